package config

import (
	"path/filepath"
	"strings"
)

// ExpandVariables substitutes $CWD, $PARENT, and $HOME into every
// string-valued field that participates in path or pattern matching.
// Expansion happens once, after the CLI/file merge, before any value is
// consumed.
func ExpandVariables(s *Session, cwd, home string) {
	replacer := strings.NewReplacer(
		"$CWD", cwd,
		"$PARENT", filepath.Base(cwd),
		"$HOME", home,
	)

	s.Container = replacer.Replace(s.Container)
	s.LocalRoot = replacer.Replace(s.LocalRoot)
	s.ContainerRoot = replacer.Replace(s.ContainerRoot)
	s.Executable = replacer.Replace(s.Executable)
	s.Pattern = replacer.Replace(s.Pattern)
}
