package flow

import (
	"fmt"
	"strconv"

	"orderbot/internal/provider"
	"orderbot/internal/state"
)

const (
	btnEdit    = "✏️ Edit Order"
	btnConfirm = "✅ Confirm Order"

	msgSessionExpired = "Session expired.\n\nType 'hi' to start over."

	msgEditOrder = "✏️ Edit Your Order\n\nTo make changes, visit our website below."

	msgWelcome = "🍕 Welcome to our restaurant!\n\nTo place your order, click below:"

	msgMenu = "📋 Our Menu\n\nView full menu with prices:"

	msgDefault = "Hi! 👋\n\nCommands:\n" +
		"• 'hi' - Place order\n" +
		"• 'menu' - View menu\n" +
		"• 'status' - Check payment\n" +
		"• 'help' - Get support\n\n" +
		"Ready to order? Type 'hi'!"
)

func fmtTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}

func confirmationMessage(o state.Order) string {
	return fmt.Sprintf(`🎉 Order Received!

📋 ORDER SUMMARY:
👤 Name: %s
🍽️ Items: %s
📊 Quantity: %s
💰 Total: ₹%s
⏰ Time: %s

Please confirm your order:`, o.Name, o.FoodItems, o.Quantity, fmtTotal(o.Total), o.Timestamp)
}

func confirmedMessage(o state.Order, orderRef, supportPhone string) string {
	return fmt.Sprintf(`✅ Order Confirmed!

👤 Customer: %s
🍽️ Items: %s
💰 Total: ₹%s
🔖 Order ID: %s

🎫 Order being prepared!
📞 Queries: %s
🕒 Time: 15-20 minutes

Click below to pay securely:`, o.Name, o.FoodItems, fmtTotal(o.Total), orderRef, supportPhone)
}

func paymentErrorMessage(supportPhone string) string {
	return fmt.Sprintf("❌ Payment Link Error\n\nCouldn't generate payment link.\n\n📞 Contact: %s", supportPhone)
}

func paymentSuccessMessage(orderRef, amount, supportPhone string) string {
	return fmt.Sprintf(`✅ Payment Successful!

🔖 Order ID: %s
💰 Amount: ₹%s

🎉 Thank you for your payment!
🍽️ Your order is being prepared
🕒 Estimated delivery: 15-20 minutes

For queries: %s`, orderRef, amount, supportPhone)
}

func paymentFailedMessage(orderRef, supportPhone string) string {
	return fmt.Sprintf("❌ Payment Failed\n\n🔖 Order ID: %s\n\nPlease try again or contact us:\n📞 %s", orderRef, supportPhone)
}

func paymentPendingMessage(orderRef, supportPhone string) string {
	return fmt.Sprintf("⏳ Payment Pending\n\n🔖 Order ID: %s\n\nPlease complete the payment or contact:\n📞 %s", orderRef, supportPhone)
}

func statusMessage(orderRef string, st provider.Status, supportPhone string) string {
	return fmt.Sprintf(`📊 Payment Status

🔖 Order ID: %s
💳 Status: %s
🔢 UTR: %s

Contact: %s`, orderRef, st.Status, st.TransactionRef, supportPhone)
}

func statusPrompt(supportPhone string) string {
	return fmt.Sprintf("Provide order ID or contact:\n\n📞 %s", supportPhone)
}

func helpMessage(supportPhone string) string {
	return fmt.Sprintf(`🆘 Support

📞 Call: %s
🕒 Hours: 9 AM - 11 PM

Commands:
• 'hi' - Place order
• 'menu' - View menu
• 'status' - Check payment`, supportPhone)
}
