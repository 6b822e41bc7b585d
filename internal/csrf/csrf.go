// internal/csrf/csrf.go
//
// Stateless CSRF tokens for the contact form.
//
// Context
//   The server-rendered contact modal embeds a hidden `csrf_token` input.  The
//   POST handler verifies it before the submission reaches the workflow.  The
//   token is stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – keyed with the configured secret.
//
//   Verification checks the signature and that the token is younger than
//   MaxAge.  No server-side sessions, so any instance can verify any token.
//
//------------------------------------------------------------------------------

package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size // nonce + ts + sig
	clockSkew  = time.Minute
)

// FieldName is the hidden input that carries the token.
const FieldName = "csrf_token"

// Signer issues and verifies tokens.  Safe for concurrent use.
type Signer struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

// New returns a Signer.  key is a base64url string of at least 32 decoded
// bytes; empty means a random per-process key (tokens die on restart).
func New(key string, maxAge time.Duration) (*Signer, error) {
	var sec []byte
	if key != "" {
		b, err := base64.RawURLEncoding.DecodeString(key)
		if err != nil {
			return nil, errors.New("csrf: key is not base64url")
		}
		if len(b) < 32 {
			return nil, errors.New("csrf: key must decode to at least 32 bytes")
		}
		sec = b
	} else {
		sec = make([]byte, 32)
		if _, err := rand.Read(sec); err != nil {
			return nil, err
		}
	}
	return &Signer{key: sec, maxAge: maxAge, now: time.Now}, nil
}

// Token creates a new token.  Call once per form render.
func (s *Signer) Token() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(s.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, s.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify returns true if tok passes HMAC and age checks.
func (s *Signer) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	age := s.now().Sub(issued)
	if age > s.maxAge || age < -clockSkew {
		return false
	}

	return hmac.Equal(sig, s.sign(nonce, tsBytes))
}

func (s *Signer) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
