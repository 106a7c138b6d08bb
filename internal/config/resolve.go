package config

import (
	"strings"
)

// Session is the resolved, immutable configuration for one proxy run —
// the "Session configuration" of the data model.
type Session struct {
	Container     string
	LocalRoot     string
	ContainerRoot string
	Executable    string
	Pattern       string
	PatchPID      []string
	ExtraArgs     []string
	LogLevel      string

	// UseDocker is the final Docker-mode decision, already accounting for
	// pattern matching and the zero-config fallbacks below.
	UseDocker bool
}

// Resolve merges CLI flags over a (possibly absent) config file into a
// Session. CLI values always win over file values field-by-field;
// "executable" additionally has the file as its lowest-priority source,
// consulted only after --exec and the argv[0]-symlink trick have both
// come up empty (handled by runner.ResolveExecutable, called by main
// after this).
func Resolve(cli CLIFlags, file *File, tier Tier, cwd string) (Session, error) {
	s := Session{
		Container:     firstNonEmpty(cli.Container, fileStr(file, func(f *File) *string { return f.Container })),
		ContainerRoot: firstNonEmpty(cli.DockerPath, fileStr(file, func(f *File) *string { return f.DockerInternalPath })),
		LocalRoot:     firstNonEmpty(cli.LocalPath, fileStr(file, func(f *File) *string { return f.LocalPath })),
		Executable:    fileStr(file, func(f *File) *string { return f.Executable }), // CLI --exec is handled later, by runner.ResolveExecutable
		Pattern:       firstNonEmpty(cli.Pattern, fileStr(file, func(f *File) *string { return f.Pattern })),
		LogLevel:      firstNonEmpty(cli.LogLevel, fileStr(file, func(f *File) *string { return f.LogLevel })),
		ExtraArgs:     cli.ExtraArgs,
	}

	if len(cli.Pids) > 0 {
		s.PatchPID = cli.Pids
	} else if file != nil {
		s.PatchPID = file.PatchPID
	}

	if s.LocalRoot == "" {
		s.LocalRoot = cwd
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}

	s.UseDocker = determineUseDocker(s, tier, cwd)

	return s, nil
}

// determineUseDocker decides whether this session talks to a server
// inside a container. Docker mode always requires both container and
// container_root to be configured. Given that: a config file found in
// the project's own working directory is itself the opt-in signal, so
// Docker mode is always eligible; a config file found under the user's
// home directory is a shared, machine-wide default, so it additionally
// requires the working directory to match pattern; and the complete
// absence of a config file (a flags-only invocation) is eligible by
// default, so a bare "--container foo -- gopls" on the command line
// works without also having to write a pattern.
func determineUseDocker(s Session, tier Tier, cwd string) bool {
	if s.Container == "" || s.ContainerRoot == "" {
		return false
	}

	switch tier {
	case TierCWD, TierNone:
		return true
	case TierHome:
		return matchesPattern(cwd, s.Pattern)
	default:
		return false
	}
}

// matchesPattern reports whether cwd is pattern itself or a descendant
// of it. An empty pattern matches everything (no opt-out configured).
func matchesPattern(cwd, pattern string) bool {
	if pattern == "" {
		return true
	}
	if cwd == pattern {
		return true
	}
	return strings.HasPrefix(cwd, strings.TrimSuffix(pattern, "/")+"/")
}

func fileStr(f *File, get func(*File) *string) string {
	if f == nil {
		return ""
	}
	return str(get(f))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
