package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jholhewres/devconsult/pkg/devconsult/consult"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// runCmd executes the root command in an empty directory with a mock keyring.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	keyring.MockInit()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmd("test")
	for _, name := range []string{"mcp", "ask", "chat", "setup", "config"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestConfigCheckKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"", consult.KeyStatusMissing},
		{"xyz_abcdefghijklmnop", consult.KeyStatusBadFormat},
		{"gsk_abcdefghijklmnop", consult.KeyStatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Setenv(consult.DefaultKeyEnv, tt.key)
			out, err := runCmd(t, "config", "check-key")
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
			if tt.key != "" {
				assert.NotContains(t, out, tt.key, "key must be masked")
			}
		})
	}
}

func TestConfigShowMasksKey(t *testing.T) {
	t.Setenv(consult.DefaultKeyEnv, "gsk_abcdefghijklmnop")
	t.Setenv(consult.ModelEnv, "")

	out, err := runCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: (defaults)")
	assert.Contains(t, out, "gsk_abcd...lmnop")
	assert.NotContains(t, out, "gsk_abcdefghijklmnop")
	assert.Contains(t, out, consult.DefaultModel)
}

func TestConfigSetAndDeleteKey(t *testing.T) {
	_, err := runCmd(t, "config", "set-key", "gsk_abcdefghijklmnop")
	require.NoError(t, err)
	assert.Equal(t, "gsk_abcdefghijklmnop", consult.GetKeyring("api_key"))

	out, err := runCmdKeepKeyring(t, "config", "delete-key")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	assert.Empty(t, consult.GetKeyring("api_key"))
}

// runCmdKeepKeyring is runCmd without resetting the mock keyring.
func runCmdKeepKeyring(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAskWithoutKeyPrintsTemplate(t *testing.T) {
	t.Setenv(consult.DefaultKeyEnv, "")

	out, err := runCmd(t, "ask", "why is this slow")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(consult.Route("why is this slow")), strings.TrimSpace(out))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"WARN":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"bogus":   "INFO",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
