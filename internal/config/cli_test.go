package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_KnownFlags(t *testing.T) {
	flags, err := ParseArgs([]string{"-c", "devbox", "--local-path", "/home/u/p", "--", "--stdio"})
	require.NoError(t, err)
	assert.Equal(t, "devbox", flags.Container)
	assert.Equal(t, "/home/u/p", flags.LocalPath)
	assert.Equal(t, []string{"--stdio"}, flags.ExtraArgs)
}

func TestParseArgs_UnrecognizedFirstArgFallsBackToPassthrough(t *testing.T) {
	flags, err := ParseArgs([]string{"--stdio", "--foo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--stdio", "--foo"}, flags.ExtraArgs)
	assert.Empty(t, flags.Container)
}

func TestParseArgs_PidsFlag(t *testing.T) {
	flags, err := ParseArgs([]string{"--pids", "pyright-langserver,gopls"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pyright-langserver", "gopls"}, flags.Pids)
}

func TestIsKnownFlag(t *testing.T) {
	assert.True(t, isKnownFlag("--pattern"))
	assert.True(t, isKnownFlag("--pattern=/opt/foo"))
	assert.False(t, isKnownFlag("--stdio"))
}
