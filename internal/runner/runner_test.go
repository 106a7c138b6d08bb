package runner

import (
	"bufio"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_LocalMode_EchoesStdin(t *testing.T) {
	h, err := Start(context.Background(), Config{
		Mode:       Local,
		Executable: "cat",
	})
	require.NoError(t, err)
	defer h.Shutdown(50*time.Millisecond, 50*time.Millisecond)

	_, err = h.Stdin.Write([]byte("hello\n"))
	require.NoError(t, err)

	r := bufio.NewReader(h.Stdout)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hello\n", line)
}

func TestShutdown_ClosingStdinEndsProcess(t *testing.T) {
	h, err := Start(context.Background(), Config{
		Mode:       Local,
		Executable: "cat",
	})
	require.NoError(t, err)

	err = h.Shutdown(2*time.Second, 2*time.Second)
	assert.NoError(t, err)
}

func TestStart_LocalMode_MissingExecutableIsResolutionError(t *testing.T) {
	_, err := Start(context.Background(), Config{
		Mode:       Local,
		Executable: "definitely-not-a-real-executable-lspdock",
	})
	require.Error(t, err)
	var resErr *ResolutionError
	assert.True(t, errors.As(err, &resErr))
}

func TestBuildCommand_Docker(t *testing.T) {
	name, args := buildCommand(Config{
		Mode:             Docker,
		Container:        "devbox",
		ContainerWorkDir: "/usr/src/app",
		Executable:       "pyright-langserver",
		ExtraArgs:        []string{"--stdio"},
	})
	assert.Equal(t, "docker", name)
	assert.Equal(t, []string{"exec", "-i", "-w", "/usr/src/app", "devbox", "pyright-langserver", "--stdio"}, args)
}

func TestBuildCommand_Local(t *testing.T) {
	name, args := buildCommand(Config{
		Mode:       Local,
		Executable: "gopls",
		ExtraArgs:  []string{"serve"},
	})
	assert.Equal(t, "gopls", name)
	assert.Equal(t, []string{"serve"}, args)
}
