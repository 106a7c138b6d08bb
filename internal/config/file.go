// Package config implements the proxy's ambient configuration
// collaborator: TOML file discovery, CLI-flag parsing and precedence,
// variable expansion, and the merge into an immutable Session.
//
// Configuration loading is a thin external collaborator the core depends
// on, not part of it, but it still uses a real third-party library
// rather than a hand-rolled parser: github.com/pelletier/go-toml/v2.
package config

// File is the TOML document shape. Every field is a pointer (or nil
// slice) so the loader can tell "absent" apart from "zero value": a
// config key that is absent in the one file that was chosen is not
// filled in from anywhere else.
type File struct {
	Container          *string  `toml:"container"`
	DockerInternalPath  *string  `toml:"docker_internal_path"`
	LocalPath           *string  `toml:"local_path"`
	Executable          *string  `toml:"executable"`
	Pattern             *string  `toml:"pattern"`
	PatchPID            []string `toml:"patch_pid"`
	LogLevel            *string  `toml:"log_level"`
}

// Tier records which search location produced the config file that was
// loaded, since Docker-mode gating differs by tier (see Resolve).
type Tier int

const (
	// TierNone means no config file was found at all.
	TierNone Tier = iota
	// TierCWD means the file was found at <cwd>/<name>.toml.
	TierCWD
	// TierHome means the file was found at ~/.config/<name>/<name>.toml.
	TierHome
)

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
