// internal/config/loader_test.go
//
// Unit-tests for LoadFrom: defaults, env overlay, vault references, and
// validation failures.  Each test writes its own conf/global.yaml into a
// temp root.
//
// Run: go test ./internal/config -v

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const baseYAML = `
http:
  listen_addr: "127.0.0.1:9090"
contact:
  subjects:
    - { value: general,  label: "General Inquiry" }
    - { value: services, label: "Consulting Services" }
`

func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644))
	return root
}

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	if v, ok := f[ref]; ok {
		return v, nil
	}
	return "", errors.New("no such secret")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), writeRoot(t, baseYAML), nil)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.HTTP.ListenAddr)
	require.Len(t, cfg.Contact.Subjects, 2)
	require.Equal(t, "Consulting Services", cfg.Contact.Subjects[1].Label)
	require.Equal(t, "Send Message", cfg.Contact.SubmitLabel)
	require.Equal(t, "Sending...", cfg.Contact.PendingLabel)
	require.Equal(t, 1500*time.Millisecond, cfg.Contact.SendDelay)
	require.Equal(t, 5*time.Second, cfg.Contact.NotificationTTL)
	require.Equal(t, 10*time.Second, cfg.Contact.Timeout)
	require.Empty(t, cfg.Transport.Endpoint)
	require.Equal(t, "simulated", transportName(cfg))
	require.Same(t, cfg, Get())
}

func TestLoad_YAMLDurationsAndEnvOverlay(t *testing.T) {
	root := writeRoot(t, baseYAML+`
  send_delay: 200ms
  reject_message: "We could not accept that message."
transport:
  endpoint: "https://relay.example.com/forms"
  retry_max: 2
`)
	t.Setenv("APO_CONTACT__TIMEOUT", "3s")
	t.Setenv("APO_TRANSPORT__RETRY_MAX", "4")

	cfg, err := LoadFrom(context.Background(), root, nil)
	require.NoError(t, err)

	require.Equal(t, 200*time.Millisecond, cfg.Contact.SendDelay)
	require.Equal(t, "We could not accept that message.", cfg.Contact.RejectMessage)
	require.Equal(t, 3*time.Second, cfg.Contact.Timeout)
	require.Equal(t, 4, cfg.Transport.RetryMax)
	require.Equal(t, "webhook", transportName(cfg))
}

func TestLoad_VaultReference(t *testing.T) {
	root := writeRoot(t, baseYAML+`
transport:
  endpoint: "https://relay.example.com/forms"
  token: "vault:secret/site#relay_token"
`)

	_, err := LoadFrom(context.Background(), root, nil)
	require.Error(t, err, "vault reference without resolver must fail")

	cfg, err := LoadFrom(context.Background(), root, fakeResolver{"secret/site#relay_token": "tok-123"})
	require.NoError(t, err)
	require.Equal(t, "tok-123", cfg.Transport.Token)

	_, err = LoadFrom(context.Background(), root, fakeResolver{})
	require.ErrorContains(t, err, "transport.token")
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"no subjects": `
http: { listen_addr: ":8080" }
`,
		"bad endpoint": baseYAML + `
transport: { endpoint: "not a url" }
`,
		"bad level": baseYAML + `
log: { level: chatty }
`,
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), writeRoot(t, yaml), nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadFrom(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
}
