package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "3009" {
		t.Errorf("HTTPPort = %q, want 3009", cfg.HTTPPort)
	}
	if cfg.StripeBaseURL != "https://api.stripe.com" {
		t.Errorf("StripeBaseURL = %q", cfg.StripeBaseURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "payments")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_abc")

	cfg := Load()

	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if cfg.StripeWebhookSecret != "whsec_abc" {
		t.Errorf("StripeWebhookSecret = %q", cfg.StripeWebhookSecret)
	}

	want := "host=db.internal user=postgres password=postgres dbname=payments port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
