package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richardhapb/lspdock/internal/config"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestFind_PrefersCWDOverHome(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(cwd, "lspdock.toml"), `container = "from-cwd"`)
	writeFile(t, filepath.Join(home, ".config", "lspdock", "lspdock.toml"), `container = "from-home"`)

	f, tier, err := Find("lspdock", cwd, home)
	require.NoError(t, err)
	assert.Equal(t, config.TierCWD, tier)
	require.NotNil(t, f.Container)
	assert.Equal(t, "from-cwd", *f.Container)
}

func TestFind_FallsBackToHome(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "lspdock", "lspdock.toml"), `container = "from-home"`)

	f, tier, err := Find("lspdock", cwd, home)
	require.NoError(t, err)
	assert.Equal(t, config.TierHome, tier)
	assert.Equal(t, "from-home", *f.Container)
}

func TestFind_NoFileFound(t *testing.T) {
	f, tier, err := Find("lspdock", t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.TierNone, tier)
	assert.Nil(t, f)
}

func TestFind_FieldsNotInheritedAcrossFiles(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()

	// CWD file sets only container; home file (never consulted) sets
	// pattern. The chosen file must not pick up pattern from the other.
	writeFile(t, filepath.Join(cwd, "lspdock.toml"), `container = "devbox"`)
	writeFile(t, filepath.Join(home, ".config", "lspdock", "lspdock.toml"), `pattern = "/opt/foo"`)

	f, tier, err := Find("lspdock", cwd, home)
	require.NoError(t, err)
	assert.Equal(t, config.TierCWD, tier)
	assert.Nil(t, f.Pattern)
}

func TestFind_MalformedTOMLIsError(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, "lspdock.toml"), `not = [valid`)

	_, _, err := Find("lspdock", cwd, t.TempDir())
	assert.Error(t, err)
}
