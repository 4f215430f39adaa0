package jumplist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppNameBuiltin(t *testing.T) {
	name, ok := AppName("5f7b5f1e01b83767")
	require.True(t, ok)
	require.Equal(t, "Quick Access", name)

	_, ok = AppName("0000000000000000")
	require.False(t, ok)
}

func TestLoadAppIDOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appids.yaml")
	overlay := "deadbeefdeadbeef: Custom Tool\nf01b4d95cf55d32a: Renamed Explorer\n"
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	require.NoError(t, LoadAppIDOverlay(path))
	t.Cleanup(func() {
		RegisterAppNames(map[string]string{"f01b4d95cf55d32a": "Windows Explorer"})
	})

	name, ok := AppName("deadbeefdeadbeef")
	require.True(t, ok)
	require.Equal(t, "Custom Tool", name)

	// Overlay entries override built-ins.
	name, _ = AppName("f01b4d95cf55d32a")
	require.Equal(t, "Renamed Explorer", name)
}

func TestLoadAppIDOverlayErrors(t *testing.T) {
	require.Error(t, LoadAppIDOverlay(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("[not: a: map"), 0o644))
	require.Error(t, LoadAppIDOverlay(bad))
}
