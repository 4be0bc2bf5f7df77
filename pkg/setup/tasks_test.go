package setup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigeyuk/serverConfig/pkg/errors"
	"github.com/nigeyuk/serverConfig/pkg/execx"
)

func newTestRunner(fake *execx.Fake) (*Runner, *ProgressTracker) {
	r := NewRunner(fake)
	tracker := NewProgressTracker()
	r.SetProgress(tracker.Callback())
	r.SetOutput(io.Discard, io.Discard)
	return r, tracker
}

func TestSystemUpdate(t *testing.T) {
	fake := &execx.Fake{}
	r, tracker := newTestRunner(fake)

	err := r.SystemUpdate(context.Background(), "apt-get")
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "apt-get update", lines[0])
	assert.Equal(t, "apt-get dist-upgrade -y", lines[1])
	assert.False(t, tracker.HasErrors())
}

func TestSystemUpdate_FailureStopsSequence(t *testing.T) {
	fake := &execx.Fake{
		StreamFunc: func(_ context.Context, _, _ io.Writer, _ string, _ ...string) (int, error) {
			return 100, nil
		},
	}
	r, tracker := newTestRunner(fake)

	err := r.SystemUpdate(context.Background(), "apt-get")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSetup))
	assert.Len(t, fake.Calls, 1, "upgrade must not run after a failed update")
	assert.True(t, tracker.HasErrors())
}

func TestHostname(t *testing.T) {
	fake := &execx.Fake{
		RunFunc: func(name string, _ ...string) (string, error) {
			return "oldhost\n", nil
		},
	}
	r, _ := newTestRunner(fake)

	err := r.Hostname(context.Background(), "newhost")
	require.NoError(t, err)

	assert.True(t, fake.Ran("hostnamectl set-hostname newhost"))
	assert.True(t, fake.Ran("sed -i"), "should rewrite /etc/hosts")
}

func TestHostname_InvalidName(t *testing.T) {
	fake := &execx.Fake{}
	r, tracker := newTestRunner(fake)

	err := r.Hostname(context.Background(), "bad name")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSetup))
	assert.Empty(t, fake.Calls, "nothing should run before validation passes")
	assert.True(t, tracker.HasErrors())
}

func TestCreateUser(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	home := t.TempDir()
	err := r.CreateUser(context.Background(), UserOptions{
		Username:     "deploy",
		SSHPublicKey: "ssh-ed25519 AAAA deploy@laptop",
		Sudo:         true,
		HomeBase:     home,
	})
	require.NoError(t, err)

	assert.True(t, fake.Ran("adduser --disabled-password"))
	assert.True(t, fake.Ran("usermod -aG sudo deploy"))
	assert.True(t, fake.Ran("chown -R deploy:deploy"))

	keys, err := os.ReadFile(filepath.Join(home, "deploy", ".ssh", "authorized_keys"))
	require.NoError(t, err)
	assert.Contains(t, string(keys), "ssh-ed25519 AAAA deploy@laptop")

	info, err := os.Stat(filepath.Join(home, "deploy", ".ssh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestCreateUser_GenerateKey(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	err := r.CreateUser(context.Background(), UserOptions{
		Username:    "deploy",
		GenerateKey: true,
		HomeBase:    t.TempDir(),
	})
	require.NoError(t, err)
	assert.True(t, fake.Ran("ssh-keygen -t ed25519"))
}

func TestCreateUser_InvalidUsername(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	err := r.CreateUser(context.Background(), UserOptions{Username: "Not Valid"})
	require.Error(t, err)
	assert.Empty(t, fake.Calls)
}

func TestFirewall(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	err := r.Firewall(context.Background(), FirewallOptions{
		SSHPort:    2218,
		ExtraRules: []string{"80/tcp", "443/tcp"},
	})
	require.NoError(t, err)

	lines := fake.CommandLines()
	require.Len(t, lines, 6)
	assert.Equal(t, "ufw default deny incoming", lines[0])
	assert.Equal(t, "ufw default allow outgoing", lines[1])
	assert.Equal(t, "ufw allow 2218/tcp", lines[2])
	assert.Equal(t, "ufw allow 80/tcp", lines[3])
	assert.Equal(t, "ufw allow 443/tcp", lines[4])
	assert.Equal(t, "ufw --force enable", lines[5])
}

func TestFirewall_InvalidPort(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	err := r.Firewall(context.Background(), FirewallOptions{SSHPort: 0})
	require.Error(t, err)
	assert.Empty(t, fake.Calls)
}

func TestSwap(t *testing.T) {
	fake := &execx.Fake{
		FileExistsFunc: func(string) bool { return false },
	}
	r, _ := newTestRunner(fake)

	err := r.Swap(context.Background(), SwapOptions{SizeGB: 2, Swappiness: 10})
	require.NoError(t, err)

	assert.True(t, fake.Ran("fallocate -l 2G /swapfile"))
	assert.True(t, fake.Ran("chmod 600 /swapfile"))
	assert.True(t, fake.Ran("mkswap /swapfile"))
	assert.True(t, fake.Ran("swapon /swapfile"))
	assert.True(t, fake.Ran("sysctl vm.swappiness=10"))
}

func TestSwap_FallocateFallsBackToDD(t *testing.T) {
	fake := &execx.Fake{
		FileExistsFunc: func(string) bool { return false },
		StreamFunc: func(_ context.Context, _, _ io.Writer, name string, _ ...string) (int, error) {
			if name == "fallocate" {
				return 1, nil
			}
			return 0, nil
		},
	}
	r, _ := newTestRunner(fake)

	err := r.Swap(context.Background(), SwapOptions{SizeGB: 1, Swappiness: -1})
	require.NoError(t, err)
	assert.True(t, fake.Ran("dd if=/dev/zero of=/swapfile bs=1M count=1024"))
}

func TestSwap_ExistingSwapFile(t *testing.T) {
	fake := &execx.Fake{
		FileExistsFunc: func(path string) bool { return path == SwapFile },
	}
	r, _ := newTestRunner(fake)

	err := r.Swap(context.Background(), SwapOptions{SizeGB: 2, Swappiness: 10})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSetup))
	assert.Empty(t, fake.Calls)
}

func TestHardenSSH(t *testing.T) {
	fake := &execx.Fake{}
	r, _ := newTestRunner(fake)

	err := r.HardenSSH(context.Background(), SSHOptions{
		Install:             true,
		Port:                2218,
		DisableRootLogin:    true,
		DisablePasswordAuth: true,
		AptCommand:          "apt-get",
	})
	require.NoError(t, err)

	assert.True(t, fake.Ran("apt-get install -y openssh-server"))
	assert.True(t, fake.Ran("sshd -t"))
	assert.True(t, fake.Ran("systemctl restart ssh"))

	lines := fake.CommandLines()
	// sshd -t must come after the config edits, restart last
	assert.Equal(t, "systemctl restart ssh", lines[len(lines)-1])
	assert.Equal(t, "sshd -t", lines[len(lines)-2])
}

func TestHardenSSH_ConfigValidationFailureBlocksRestart(t *testing.T) {
	fake := &execx.Fake{
		StreamFunc: func(_ context.Context, _, _ io.Writer, name string, _ ...string) (int, error) {
			if name == "sshd" {
				return 255, nil
			}
			return 0, nil
		},
	}
	r, _ := newTestRunner(fake)

	err := r.HardenSSH(context.Background(), SSHOptions{Port: 22})
	require.Error(t, err)
	assert.False(t, fake.Ran("systemctl restart ssh"),
		"daemon must not restart on a broken config")
}
