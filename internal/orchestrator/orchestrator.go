// Package orchestrator wires the Framing I/O, Rewrite Pipeline, Server
// Runner, and Liveness Watchdog into one session and owns teardown. It
// has no cyclic ownership: the orchestrator owns the server handle, the
// two copy loops borrow it for the session's duration, and the watchdog
// holds only enough to request a cancellation.
package orchestrator

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/richardhapb/lspdock/internal/config"
	"github.com/richardhapb/lspdock/internal/rewrite"
	"github.com/richardhapb/lspdock/internal/runner"
	"github.com/richardhapb/lspdock/internal/watchdog"
)

const (
	shutdownTermWindow = 2 * time.Second
	shutdownKillWindow = 2 * time.Second
	watchdogInterval    = 1 * time.Second
)

// Run drives one proxy session to completion: it spawns the server,
// starts the two copy loops and the watchdog, and blocks until the
// session ends (client EOF, server EOF, watchdog-detected parent death,
// or a fatal framing error), tearing everything down exactly once
// before returning.
func Run(ctx context.Context, sess config.Session, log *zap.Logger, clientIn io.Reader, clientOut io.Writer) error {
	pipeline := buildPipeline(sess, log)

	mode := runner.Local
	if sess.UseDocker {
		mode = runner.Docker
	}

	handle, err := runner.Start(ctx, runner.Config{
		Mode:             mode,
		Container:        sess.Container,
		ContainerWorkDir: sess.ContainerRoot,
		Executable:       sess.Executable,
		ExtraArgs:        sess.ExtraArgs,
	})
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		relayStderr(handle.Stderr, log)
	}()

	loopErrs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		loopErrs <- copyLoop(sessionCtx, "client->server", clientIn, handle.Stdin, pipeline, rewrite.ToServer, log)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		loopErrs <- copyLoop(sessionCtx, "server->client", handle.Stdout, clientOut, pipeline, rewrite.ToClient, log)
	}()

	wd := watchdog.New(os.Getppid(), watchdogInterval, func(reason string) {
		log.Info("watchdog requesting session teardown", zap.String("reason", reason))
		cancel()
	}, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		wd.Run(sessionCtx)
	}()

	var sessionErr error
	serverExited := false
	select {
	case sessionErr = <-loopErrs:
	case exitErr := <-handle.Wait():
		serverExited = true
		if exitErr != nil {
			log.Warn("server child exited unexpectedly", zap.Error(exitErr))
		} else {
			log.Info("server child exited")
		}
		sessionErr = exitErr
	case <-sessionCtx.Done():
	}

	cancel()
	wd.Stop()

	// The child's single exit value has already been received above when
	// the server exited first, so Shutdown (which waits for it) is skipped.
	var shutdownErr error
	if serverExited {
		handle.Stdin.Close()
	} else {
		shutdownErr = handle.Shutdown(shutdownTermWindow, shutdownKillWindow)
	}
	wg.Wait()

	if sessionErr != nil {
		return sessionErr
	}
	return shutdownErr
}

// buildPipeline constructs the rewrite pipeline for the session. When the
// session is not in Docker mode, the pipeline is short-circuited to the
// identity function: framing and logging still happen, but no path or
// PID rewriting.
func buildPipeline(sess config.Session, log *zap.Logger) *rewrite.Pipeline {
	if !sess.UseDocker {
		return &rewrite.Pipeline{ShortCircuit: true, Log: log}
	}

	reg := rewrite.NewRegistry()
	mat := rewrite.NewMaterializer(sess.Container, sess.LocalRoot, os.TempDir(), reg)

	return &rewrite.Pipeline{
		Mapper:       rewrite.PathMapper{LocalRoot: sess.LocalRoot, ContainerRoot: sess.ContainerRoot},
		PatchPID:     requiresPatchPID(sess),
		Materializer: mat,
		Log:          log,
	}
}

// requiresPatchPID reports whether the session's executable, matched by
// basename (not full path), is in the patch_pid list.
func requiresPatchPID(sess config.Session) bool {
	base := filepath.Base(sess.Executable)
	for _, name := range sess.PatchPID {
		if name == base {
			return true
		}
	}
	return false
}

func relayStderr(r io.Reader, log *zap.Logger) {
	buf := make([]byte, 4096)
	var pending strings.Builder
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending.Write(buf[:n])
			for {
				s := pending.String()
				idx := strings.IndexByte(s, '\n')
				if idx < 0 {
					break
				}
				log.Info("server stderr", zap.String("line", strings.TrimRight(s[:idx], "\r")))
				pending.Reset()
				pending.WriteString(s[idx+1:])
			}
		}
		if err != nil {
			if pending.Len() > 0 {
				log.Info("server stderr", zap.String("line", pending.String()))
			}
			return
		}
	}
}
