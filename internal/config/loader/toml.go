// Package loader finds and parses the proxy's TOML configuration file.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/richardhapb/lspdock/internal/config"
)

// Find searches, in order, <cwd>/<name>.toml then
// ~/.config/<name>/<name>.toml, and loads whichever is found first. The
// two locations are never merged: the first file found is used in
// isolation, exactly as the second is used in isolation if the first is
// absent.
func Find(name, cwd, home string) (*config.File, config.Tier, error) {
	cwdPath := filepath.Join(cwd, name+".toml")
	if f, err := load(cwdPath); err != nil {
		return nil, config.TierNone, err
	} else if f != nil {
		return f, config.TierCWD, nil
	}

	homePath := filepath.Join(home, ".config", name, name+".toml")
	if f, err := load(homePath); err != nil {
		return nil, config.TierNone, err
	} else if f != nil {
		return f, config.TierHome, nil
	}

	return nil, config.TierNone, nil
}

func load(path string) (*config.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f config.File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &f, nil
}
