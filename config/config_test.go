package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "CONTENT_DIR", "BASE_URL", "SMTP_USER", "SMTP_PASS", "TO_EMAIL"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Port != "8080" || c.DBPath != "folio.db" || c.ContentDir != "site" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.SMTPConfigured() {
		t.Fatalf("SMTP should not be configured without credentials")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_URL", "https://example.com/")
	t.Setenv("SMTP_USER", "me")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("TO_EMAIL", "inbox@example.com")

	c := Load()
	if c.Port != "9000" || c.BaseURL != "https://example.com" {
		t.Fatalf("env not applied: %+v", c)
	}
	if !c.SMTPConfigured() {
		t.Fatalf("SMTP should be configured")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
	t.Setenv("FOLIO_TEST_VAR", "")
	if _, err := Lookup("FOLIO_TEST_VAR"); !errors.Is(err, ErrUnset) {
		t.Fatalf("Lookup(unset) error = %v, want ErrUnset", err)
	}
	t.Setenv("FOLIO_TEST_VAR", "x")
	if v, err := Lookup("FOLIO_TEST_VAR"); err != nil || v != "x" {
		t.Fatalf("Lookup = %q, %v", v, err)
	}
}

func TestValidateRelease(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	if err := (Config{GinMode: "debug"}).Validate(); err != nil {
		t.Fatalf("debug mode should not need admin credentials: %v", err)
	}
	if err := (Config{GinMode: "release"}).Validate(); !errors.Is(err, ErrUnset) {
		t.Fatalf("release without credentials: %v", err)
	}

	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "long-secret")
	if err := (Config{GinMode: "release"}).Validate(); err != nil {
		t.Fatalf("release with credentials: %v", err)
	}
}
