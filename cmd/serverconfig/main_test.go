package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigeyuk/serverConfig/pkg/config"
	"github.com/nigeyuk/serverConfig/pkg/execx"
	"github.com/nigeyuk/serverConfig/pkg/tui"
)

// withFakeExecutor routes every external command through the fake for the
// duration of a test.
func withFakeExecutor(t *testing.T, fake *execx.Fake) {
	t.Helper()
	orig := newExecutor
	newExecutor = func() execx.Executor { return fake }
	t.Cleanup(func() { newExecutor = orig })
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "serverconfig", rootCmd.Use)
	assert.Equal(t, "Linux Server Setup Tool", rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCmdHelp(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--help"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "serverconfig")
	assert.Contains(t, output, "menu")
	assert.Contains(t, output, "install")
	assert.Contains(t, output, "catalog")
	assert.Contains(t, output, "firewall")
	assert.Contains(t, output, "swap")
	assert.Contains(t, output, "doctor")
}

func TestVersionCmd(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"version"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "serverconfig version")
}

func TestRootCmdVersion(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"--version"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "serverconfig version")
}

func TestMenuCmd(t *testing.T) {
	// The menu loop is driven by interactive huh forms, tested in pkg/tui.
	t.Skip("menu command requires interactive TTY")
}

// writeTestCatalog writes a small catalog and points the --catalog flag at it.
func writeTestCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "packages.list")
	content := "## Development\ngit\nmake\n\n## Web\nnginx\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogCmd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())
	catalogPath := writeTestCatalog(t)

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"catalog", "--catalog", catalogPath})

	err := rootCmd.Execute()
	require.NoError(t, err)
}

func TestCatalogCmd_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"catalog", "--catalog", filepath.Join(t.TempDir(), "nope.list")})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestInstallCmd_NotConfirmed(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())
	catalogPath := writeTestCatalog(t)

	// Selecting a category out of range fails before any confirmation
	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install", "--catalog", catalogPath, "--index", "99", "--yes"})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2")
}

func TestConfigInitCmd(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"config", "init", "--config", configPath})

	err := rootCmd.Execute()
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog_path")
}

func TestSubcommandHelp(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		expects []string
	}{
		{
			name:    "install help",
			args:    []string{"install", "--help"},
			expects: []string{"catalog", "--yes"},
		},
		{
			name:    "adduser help",
			args:    []string{"adduser", "--help"},
			expects: []string{"ssh-key", "sudo"},
		},
		{
			name:    "firewall help",
			args:    []string{"firewall", "--help"},
			expects: []string{"ufw", "--allow"},
		},
		{
			name:    "ssh help",
			args:    []string{"ssh", "--help"},
			expects: []string{"sshd -t", "--port"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newRootCmd()
			rootCmd.SetArgs(tt.args)

			var buf bytes.Buffer
			rootCmd.SetOut(&buf)

			err := rootCmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			for _, want := range tt.expects {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestInstallCmd_PlainPromptDeclines(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())
	catalogPath := writeTestCatalog(t)

	fake := &execx.Fake{}
	withFakeExecutor(t, fake)

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install", "--catalog", catalogPath})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("2\nn\n"))

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1) Development")
	assert.Contains(t, out.String(), "2) Web")
	assert.Empty(t, fake.Calls, "declining must not touch the package manager")
}

func TestInstallCmd_PlainPromptConfirms(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())
	catalogPath := writeTestCatalog(t)

	fake := &execx.Fake{}
	withFakeExecutor(t, fake)

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"install", "--catalog", catalogPath})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("1\ny\n"))

	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.True(t, fake.Ran("apt-get install -y git make"))
}

func TestDispatchSSH_PromptsForHardeningToggles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", t.TempDir())

	fake := &execx.Fake{}
	withFakeExecutor(t, fake)

	cmd := newRootCmd()
	cmd.SetContext(context.Background())
	cmd.SetOut(&bytes.Buffer{})
	// no install, port 2218, keep root login, disable password auth
	cmd.SetIn(strings.NewReader("n\n2218\nn\ny\n"))

	err := dispatch(cmd, config.Default(), tui.ActionSSH)
	require.NoError(t, err)

	lines := strings.Join(fake.CommandLines(), "\n")
	assert.Contains(t, lines, "Port 2218")
	assert.Contains(t, lines, "PasswordAuthentication no")
	assert.NotContains(t, lines, "PermitRootLogin",
		"answering no must leave root login untouched")
	assert.NotContains(t, lines, "openssh-server")
	assert.True(t, fake.Ran("sshd -t"))
}

func TestLoadConfig_SingleLogSink(t *testing.T) {
	logDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SERVERCONFIG_LOG_DIR", logDir)

	// loadConfig is exercised directly; registering the flags resets the
	// globals other tests may have set
	newRootCmd()

	_, err := loadConfig()
	require.NoError(t, err)
	_, err = loadConfig()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(entries), 1,
		"repeated loads must not open a new log file per call")
}
