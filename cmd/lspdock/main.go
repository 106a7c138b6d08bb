// Command lspdock is a transparent stdio proxy between an editor and a
// language server that may run inside a Docker container.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/richardhapb/lspdock/internal/config"
	"github.com/richardhapb/lspdock/internal/config/loader"
	"github.com/richardhapb/lspdock/internal/logging"
	"github.com/richardhapb/lspdock/internal/orchestrator"
	"github.com/richardhapb/lspdock/internal/runner"
)

// version is set at build time; unset it reads as "dev".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lspdock:", err)
		os.Exit(1)
	}
}

func run() error {
	cli, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	file, tier, err := loader.Find(config.CanonicalName, cwd, home)
	if err != nil {
		return err
	}

	sess, err := config.Resolve(cli, file, tier, cwd)
	if err != nil {
		return err
	}
	config.ExpandVariables(&sess, cwd, home)

	executable, err := runner.ResolveExecutable(cli.Exec, os.Args[0], sess.Executable, config.CanonicalName)
	if err != nil {
		return err
	}
	sess.Executable = executable

	level, err := logging.ParseLevel(sess.LogLevel)
	if err != nil {
		return err
	}

	logPath := logging.Path(sess.Executable)
	log, cleanup, err := logging.New(logPath, level)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Info("starting session",
		zap.String("container", sess.Container),
		zap.Bool("useDocker", sess.UseDocker),
		zap.String("executable", sess.Executable))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx, sess, log, os.Stdin, os.Stdout)
}
