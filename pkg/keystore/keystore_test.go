package keystore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	t.Run("writes an owner-only key file", func(t *testing.T) {
		dir := t.TempDir()

		path, err := Save(dir, "pub123", "priv456")
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(path))
		assert.True(t, strings.HasPrefix(filepath.Base(path), "hop_keys_"))
		assert.True(t, strings.HasSuffix(path, ".txt"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "PUBKEY=pub123\nPRIVKEY=priv456\n", string(data))
	})

	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "keys", "hops")

		path, err := Save(dir, "pub", "priv")
		require.NoError(t, err)

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	})
}

func TestLoad(t *testing.T) {
	t.Run("round trips a saved keypair", func(t *testing.T) {
		path, err := Save(t.TempDir(), "pub123", "priv456")
		require.NoError(t, err)

		pub, priv, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "pub123", pub)
		assert.Equal(t, "priv456", priv)
	})

	t.Run("rejects files missing a key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.txt")
		require.NoError(t, os.WriteFile(path, []byte("PUBKEY=only\n"), 0o600))

		_, _, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects missing files", func(t *testing.T) {
		_, _, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
