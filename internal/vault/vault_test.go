package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMount(t *testing.T) {
	mount, rel := splitMount("secret/site/relay")
	require.Equal(t, "secret", mount)
	require.Equal(t, "site/relay", rel)

	mount, rel = splitMount("secret")
	require.Equal(t, "secret", mount)
	require.Empty(t, rel)
}

func TestResolve_RejectsMalformedRef(t *testing.T) {
	c := &Client{cache: map[string]cached{}}
	_, err := c.Resolve(context.Background(), "secret/site")
	require.ErrorContains(t, err, "missing #key")
}

func TestGetKV_RejectsEmptyParts(t *testing.T) {
	c := &Client{cache: map[string]cached{}}
	_, err := c.GetKV(context.Background(), "", "k", 0)
	require.Error(t, err)
}
