package handlers

import (
	"fmt"
	"net/http"
)

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Payment Successful</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px 20px; background: #f0fdf4; }
        .card { background: white; max-width: 400px; margin: 0 auto; padding: 40px 30px; border-radius: 12px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .icon { font-size: 64px; }
        h1 { color: #16a34a; }
        .ref { color: #6b7280; font-size: 14px; }
    </style>
</head>
<body>
    <div class="card">
        <div class="icon">&#9989;</div>
        <h1>Payment Successful!</h1>
        <p>Your order is being prepared.</p>
        <p>Check WhatsApp for your order confirmation.</p>
        <p class="ref">Order ID: %s</p>
    </div>
</body>
</html>`

const errorPage = `<!DOCTYPE html>
<html>
<head>
    <title>Payment Error</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px 20px; background: #fef2f2; }
        .card { background: white; max-width: 400px; margin: 0 auto; padding: 40px 30px; border-radius: 12px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .icon { font-size: 64px; }
        h1 { color: #dc2626; }
    </style>
</head>
<body>
    <div class="card">
        <div class="icon">&#10060;</div>
        <h1>Payment Error</h1>
        <p>Something went wrong with your payment.</p>
        <p>Please try again or contact support.</p>
    </div>
</body>
</html>`

func renderPaymentPage(w http.ResponseWriter, success bool, orderRef string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if success {
		fmt.Fprintf(w, successPage, orderRef)
		return
	}
	fmt.Fprint(w, errorPage)
}
