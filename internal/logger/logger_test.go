package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesDailyFile(t *testing.T) {
	root := t.TempDir()
	restore := zap.ReplaceGlobals(zap.NewNop())
	defer restore()

	log, err := New(root, false, "debug")
	require.NoError(t, err)
	log.Infow("contact submission delivered", "subject", "general")
	_ = log.Sync()

	name := filepath.Join(root, "logs", time.Now().Format("2006-01-02")+".log")
	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"msg":"contact submission delivered"`)
	require.Contains(t, string(raw), `"subject":"general"`)
}

func TestFromContext(t *testing.T) {
	l := zap.NewNop().Sugar()
	ctx := WithContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	require.NotNil(t, FromContext(context.Background()), "falls back to the global logger")
}
