package config

import (
	"strings"

	"github.com/spf13/cobra"
)

// CanonicalName is the proxy's own name: the value argv[0]'s basename is
// compared against during executable resolution, and the command name
// cobra reports itself as.
const CanonicalName = "lspdock"

// CLIFlags holds everything parsed from the command line, before merging
// with the config file.
type CLIFlags struct {
	Container  string
	DockerPath string
	LocalPath  string
	Exec       string
	Pids       []string
	Pattern    string
	LogLevel   string
	ExtraArgs  []string
}

// knownFlags is the exact set of tokens lspdock itself recognizes. It
// drives the CLI passthrough fallback below.
var knownFlags = map[string]bool{
	"-c": true, "--container": true,
	"-d": true, "--docker-path": true,
	"-L": true, "--local-path": true,
	"-e": true, "--exec": true,
	"--pids": true,
	"-p":     true, "--pattern": true,
	"-l": true, "--log-level": true,
	"-h": true, "--help": true,
	"-V": true, "--version": true,
}

// isKnownFlag reports whether tok is a recognized lspdock flag, ignoring
// an "=value" suffix (e.g. "--pattern=/opt/foo").
func isKnownFlag(tok string) bool {
	if name, _, ok := strings.Cut(tok, "="); ok {
		tok = name
	}
	return knownFlags[tok]
}

// ParseArgs parses argv (os.Args[1:]) into CLIFlags.
//
// Per the external interface: arguments after "--" are forwarded
// verbatim as server arguments. If the first argument is not one lspdock
// itself recognizes (e.g. "--stdio", meant for the language server), the
// entire argument vector is treated as passthrough without requiring a
// "--" separator, mirroring how a symlinked invocation like
// "pyright-langserver --stdio" is expected to just work.
func ParseArgs(argv []string) (CLIFlags, error) {
	if len(argv) > 0 && argv[0] != "--" && !isKnownFlag(argv[0]) {
		return CLIFlags{ExtraArgs: argv}, nil
	}

	var flags CLIFlags
	cmd := newRootCommand(&flags)
	cmd.SetArgs(argv)
	if err := cmd.Execute(); err != nil {
		return CLIFlags{}, err
	}
	return flags, nil
}

func newRootCommand(flags *CLIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           CanonicalName + " [OPTIONS] [-- LSP_ARGS...]",
		Short:         "Transparent stdio proxy between an editor and a (possibly containerized) language server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.ExtraArgs = args
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Container, "container", "c", "", "target container name")
	cmd.Flags().StringVarP(&flags.DockerPath, "docker-path", "d", "", "absolute path inside the container (container_root)")
	cmd.Flags().StringVarP(&flags.LocalPath, "local-path", "L", "", "absolute local path (local_root)")
	cmd.Flags().StringVarP(&flags.Exec, "exec", "e", "", "server executable name")
	cmd.Flags().StringSliceVar(&flags.Pids, "pids", nil, "comma-separated executables requiring PID patching")
	cmd.Flags().StringVarP(&flags.Pattern, "pattern", "p", "", "host path prefix that enables Docker mode")
	cmd.Flags().StringVarP(&flags.LogLevel, "log-level", "l", "", "trace|debug|info|warning|error")

	return cmd
}
