package csrf

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s, err := New("", time.Hour)
	require.NoError(t, err)

	tok, err := s.Token()
	require.NoError(t, err)
	require.True(t, s.Verify(tok))
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.False(t, s.Verify(base64.RawURLEncoding.EncodeToString(raw)), "tampered signature")
	require.False(t, s.Verify(""))
	require.False(t, s.Verify("%%%"))
}

func TestSigner_Expiry(t *testing.T) {
	s, err := New("", time.Minute)
	require.NoError(t, err)

	start := time.Now()
	s.now = func() time.Time { return start }
	tok, err := s.Token()
	require.NoError(t, err)

	s.now = func() time.Time { return start.Add(59 * time.Second) }
	require.True(t, s.Verify(tok))

	s.now = func() time.Time { return start.Add(2 * time.Minute) }
	require.False(t, s.Verify(tok))

	s.now = func() time.Time { return start.Add(-2 * time.Minute) }
	require.False(t, s.Verify(tok), "issued in the future")
}

func TestSigner_KeyedTokensDoNotCrossVerify(t *testing.T) {
	keyA := base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("a", 32)))
	keyB := base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("b", 32)))

	a, err := New(keyA, time.Hour)
	require.NoError(t, err)
	b, err := New(keyB, time.Hour)
	require.NoError(t, err)

	tok, err := a.Token()
	require.NoError(t, err)
	require.True(t, a.Verify(tok))
	require.False(t, b.Verify(tok))
}

func TestNew_RejectsShortKey(t *testing.T) {
	_, err := New(base64.RawURLEncoding.EncodeToString([]byte("short")), time.Hour)
	require.Error(t, err)

	_, err = New("not base64 !!", time.Hour)
	require.Error(t, err)
}
