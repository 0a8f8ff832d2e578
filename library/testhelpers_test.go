package library

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tempFiles returns catalog and checkout paths inside a fresh directory.
func tempFiles(t *testing.T) (catalogPath, checkoutPath string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "catalog.txt"), filepath.Join(dir, "myCheckouts.txt")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func fee(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
