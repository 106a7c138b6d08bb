package runner

import (
	"path/filepath"
	"strings"
)

// ResolveExecutable implements the executable name resolution precedence:
//  1. --exec, if supplied.
//  2. The proxy's own argv[0] basename (extension stripped), if it is not
//     the proxy's canonical name — this lets a user symlink the proxy as
//     e.g. "pyright-langserver" and have it identify the target by its
//     own filename.
//  3. The "executable" field from configuration.
//
// canonicalName is the proxy's own name (e.g. "lspdock"); argv0 is
// os.Args[0] as received by the process. Both "/" and "\" are treated as
// directory separators in argv0, on every platform.
func ResolveExecutable(flagExec, argv0, configExecutable, canonicalName string) (string, error) {
	if flagExec != "" {
		return flagExec, nil
	}

	name := argv0
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	base := stripExt(name)
	if base != "" && base != canonicalName {
		return base, nil
	}

	if configExecutable != "" {
		return configExecutable, nil
	}

	return "", &ResolutionError{Reason: "no --exec flag, no recognizable symlink name, and no executable configured"}
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
