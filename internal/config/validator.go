// internal/config/validator.go
//
// Defaults and a thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `applyDefaults` and then
// `validateStruct` immediately after it unmarshals the merged Koanf tree.
// Any validation error aborts startup, so the binary never runs with a
// malformed contact section (no subjects, negative timeouts, bad URL).
//
// Defaults: 1500 ms simulated send, 5 s banner,
// 10 s request timeout.

package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}

// defaults
func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Contact.SubmitLabel == "" {
		c.Contact.SubmitLabel = "Send Message"
	}
	if c.Contact.PendingLabel == "" {
		c.Contact.PendingLabel = "Sending..."
	}
	if c.Contact.Timeout == 0 {
		c.Contact.Timeout = 10 * time.Second
	}
	if c.Contact.NotificationTTL == 0 {
		c.Contact.NotificationTTL = 5 * time.Second
	}
	if c.Contact.SendDelay == 0 {
		c.Contact.SendDelay = 1500 * time.Millisecond
	}
	if c.Transport.RetryWait == 0 {
		c.Transport.RetryWait = 250 * time.Millisecond
	}
	if c.Transport.AttemptTTL == 0 {
		c.Transport.AttemptTTL = 5 * time.Second
	}
	if c.CSRF.MaxAge == 0 {
		c.CSRF.MaxAge = 2 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
