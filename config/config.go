package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port          string
	GinMode       string
	DBPath        string
	ContentDir    string
	TemplatesGlob string
	StaticDir     string
	BaseURL       string

	AdminUsername string
	AdminPassword string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string
}

// Load reads the environment, falling back to development defaults. Admin
// credentials have no default here; the login handler supplies dev ones.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "debug"),
		DBPath:        getenv("DB_PATH", "folio.db"),
		ContentDir:    getenv("CONTENT_DIR", "site"),
		TemplatesGlob: getenv("TEMPLATES_GLOB", "templates/*"),
		StaticDir:     getenv("STATIC_DIR", "static"),
		BaseURL:       strings.TrimSuffix(getenv("BASE_URL", "http://localhost:8080"), "/"),

		AdminUsername: getenv("ADMIN_USERNAME", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),

		SMTPHost: getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPUser: getenv("SMTP_USER", ""),
		SMTPPass: getenv("SMTP_PASS", ""),
		ToEmail:  getenv("TO_EMAIL", ""),
	}
}

// SMTPConfigured reports whether contact mail can be sent.
func (c Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}

// ErrUnset is returned by Lookup for variables that are missing or empty.
var ErrUnset = errors.New("environment variable not set")

// Lookup returns the value of key, or ErrUnset.
func Lookup(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty variable name")
	}
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: %w", key, ErrUnset)
}

// Validate refuses to run in release mode on the built-in admin login.
func (c Config) Validate() error {
	if c.GinMode != "release" {
		return nil
	}
	for _, key := range []string{"ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		if _, err := Lookup(key); err != nil {
			return fmt.Errorf("release mode: %w", err)
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v, err := Lookup(key); err == nil {
		return v
	}
	return def
}
