// internal/config/model.go
//
// Typed configuration model for the ApoConsult site.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                       – dotenv values,
//   • `conf/global.yaml`                    – primary static file,
//   • `APO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through a SecretResolver *before* unmarshalling, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal and defaulting; the app
// fails fast if required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • Durations accept Go syntax ("1500ms", "5s").
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Contact section
//

// Subject is one entry of the subject dropdown.
type Subject struct {
	Value string `koanf:"value" validate:"required"`
	Label string `koanf:"label" validate:"required"`
}

// Contact holds the workflow's labels, messages, and timings.
type Contact struct {
	Subjects        []Subject     `koanf:"subjects"         validate:"required,min=1,dive"`
	SubmitLabel     string        `koanf:"submit_label"`
	PendingLabel    string        `koanf:"pending_label"`
	SuccessMessage  string        `koanf:"success_message"`
	FailureMessage  string        `koanf:"failure_message"`
	RejectMessage   string        `koanf:"reject_message"`
	Timeout         time.Duration `koanf:"timeout"          validate:"gte=0"`
	NotificationTTL time.Duration `koanf:"notification_ttl" validate:"gte=0"`
	SendDelay       time.Duration `koanf:"send_delay"       validate:"gte=0"`
}

//
// Transport section
//

// Transport configures delivery.  An empty Endpoint selects the simulated
// transport (fixed delay, always succeeds), which is meant for development.
//
// Token is usually a `vault:` reference so the relay secret stays out of
// flat files and git history.
type Transport struct {
	Endpoint   string        `koanf:"endpoint"    validate:"omitempty,url"`
	Token      string        `koanf:"token"`
	RetryMax   int           `koanf:"retry_max"   validate:"gte=0,lte=10"`
	RetryWait  time.Duration `koanf:"retry_wait"  validate:"gte=0"`
	AttemptTTL time.Duration `koanf:"attempt_ttl" validate:"gte=0"`
}

//
// Security and enrichment sections
//

// CSRF holds the HMAC key for form tokens (base64url, ≥ 32 bytes decoded).
// Empty means a random per-process key.
type CSRF struct {
	Key    string        `koanf:"key"`
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`
}

// Geo points at an optional GeoLite2-City database.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

// Log tunes the file logger.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // APO_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Contact   Contact   `koanf:"contact"`
	Transport Transport `koanf:"transport"`
	CSRF      CSRF      `koanf:"csrf"`
	Geo       Geo       `koanf:"geo"`
	Log       Log       `koanf:"log"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}
