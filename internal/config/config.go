package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env            string
	Port           string
	BaseURL        string // this service's externally reachable URL
	StorefrontURL  string // order-entry website customers are sent to
	SupportPhone   string
	AllowedOrigins []string
}

type WhatsAppCfg struct {
	Token       string
	PhoneID     string
	APIBase     string // e.g. https://graph.facebook.com/v23.0
	VerifyToken string
}

type PaymentCfg struct {
	Backend   string // "payo" or "static"
	UserToken string
	BaseURL   string
	StaticURL string
}

type StateCfg struct {
	RedisAddr  string // empty means in-memory
	SessionTTL time.Duration
}

type Cfg struct {
	App      AppCfg
	WhatsApp WhatsAppCfg
	Payment  PaymentCfg
	State    StateCfg
}

func Load() Cfg {
	// Load .env into process env if present.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "sandbox")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("WHATSAPP_API_BASE", "https://graph.facebook.com/v23.0")
	viper.SetDefault("VERIFY_TOKEN", "your_verify_token")
	viper.SetDefault("PAYO_BASE_URL", "https://pay0.shop")
	viper.SetDefault("PAYMENT_BACKEND", "payo")
	viper.SetDefault("SESSION_TTL_MIN", 60)
	viper.SetDefault("SUPPORT_PHONE", "+91-9327256068")

	cfg := Cfg{
		App: AppCfg{
			Env:            viper.GetString("APP_ENV"),
			Port:           viper.GetString("APP_PORT"),
			BaseURL:        viper.GetString("APP_BASE_URL"),
			StorefrontURL:  viper.GetString("WEBSITE_URL"),
			SupportPhone:   viper.GetString("SUPPORT_PHONE"),
			AllowedOrigins: splitOrigins(viper.GetString("ALLOWED_ORIGINS")),
		},
		WhatsApp: WhatsAppCfg{
			Token:       viper.GetString("WHATSAPP_TOKEN"),
			PhoneID:     viper.GetString("WHATSAPP_PHONE_ID"),
			APIBase:     strings.TrimRight(viper.GetString("WHATSAPP_API_BASE"), "/"),
			VerifyToken: viper.GetString("VERIFY_TOKEN"),
		},
		Payment: PaymentCfg{
			Backend:   viper.GetString("PAYMENT_BACKEND"),
			UserToken: strings.TrimSpace(viper.GetString("PAYO_API_KEY")),
			BaseURL:   strings.TrimRight(viper.GetString("PAYO_BASE_URL"), "/"),
			StaticURL: viper.GetString("STATIC_PAYMENT_URL"),
		},
		State: StateCfg{
			RedisAddr:  viper.GetString("REDIS_ADDR"),
			SessionTTL: time.Duration(viper.GetInt("SESSION_TTL_MIN")) * time.Minute,
		},
	}

	// Missing credentials degrade the service instead of blocking startup:
	// the bot can still answer menu/help, and the payment factory falls back
	// to the static link when the Pay0 token is absent.
	warnIfEmpty(cfg.WhatsApp.Token, "WHATSAPP_TOKEN")
	warnIfEmpty(cfg.WhatsApp.PhoneID, "WHATSAPP_PHONE_ID")
	warnIfEmpty(cfg.App.StorefrontURL, "WEBSITE_URL")
	if cfg.Payment.Backend == "payo" {
		warnIfEmpty(cfg.Payment.UserToken, "PAYO_API_KEY")
	}

	return cfg
}

func warnIfEmpty(v, name string) {
	if strings.TrimSpace(v) == "" {
		log.Warn().Str("var", name).Msg("required setting not set; related features degraded")
	}
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Masked returns the tail of a secret for startup logging.
func Masked(secret string, n int) string {
	if secret == "" {
		return "NOT SET"
	}
	if len(secret) <= n {
		return strings.Repeat("*", len(secret))
	}
	return "..." + secret[len(secret)-n:]
}
