package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.6367.91 Safari/537.36"

func TestPrimaryLang(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"en-US,en;q=0.9":       "en-us",
		"fr;q=0.8, en":         "fr",
		" DE-de , en-GB;q=0.7": "de-de",
		"es":                   "es",
	}
	for in, want := range cases {
		require.Equal(t, want, primaryLang(in), "Accept-Language %q", in)
	}
}

func TestParseUA_Desktop(t *testing.T) {
	ua := parseUA(chromeMac, "en-US")
	require.Equal(t, "Chrome", ua.Browser)
	require.Equal(t, "Desktop", ua.Device)
	require.False(t, ua.IsBot)
	require.Equal(t, "en-us", ua.PrimaryLang)
	require.Equal(t, chromeMac, ua.Raw)
}

func TestParseUA_Bot(t *testing.T) {
	ua := parseUA("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "")
	require.True(t, ua.IsBot)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	require.Equal(t, "10.0.0.9", clientIP(r).String())

	r.Header.Set("X-Real-Ip", "192.0.2.4")
	require.Equal(t, "192.0.2.4", clientIP(r).String())

	r.Header.Set("X-Forwarded-For", "garbage, 198.51.100.7, 10.0.0.1")
	require.Equal(t, "198.51.100.7", clientIP(r).String())
}

func TestEnrich_AttachesInfo(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/contact?x=1", nil)
	r.Header.Set("User-Agent", chromeMac)
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	require.Equal(t, "/contact", got.URL.Path)
	require.Equal(t, "Chrome", got.UA.Browser)
	require.Empty(t, got.Geo.CountryISO, "no GeoLite2 DB configured")
	require.False(t, got.Timestamp.IsZero())
	require.Contains(t, got.LogFields(), "Chrome")
}

func TestFromContext_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Nil(t, FromContext(r.Context()))
	require.Nil(t, (*RequestInfo)(nil).LogFields())
}

func TestInitGeo(t *testing.T) {
	require.NoError(t, InitGeo(""))
	require.Error(t, InitGeo("/does/not/exist.mmdb"))
}
