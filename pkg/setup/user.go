package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// UserOptions configures user provisioning.
type UserOptions struct {
	Username     string
	SSHPublicKey string // installed into authorized_keys when set
	GenerateKey  bool   // generate an ed25519 keypair for the user
	Sudo         bool   // add the user to the sudo group
	HomeBase     string // defaults to /home
}

// CreateUser creates a system user and provisions its SSH access.
func (r *Runner) CreateUser(ctx context.Context, opts UserOptions) error {
	r.emit(StageValidating, "Validating username", "")
	if err := ValidateUsername(opts.Username); err != nil {
		r.emit(StageError, err.Error(), "")
		return err
	}

	if opts.HomeBase == "" {
		opts.HomeBase = "/home"
	}
	home := filepath.Join(opts.HomeBase, opts.Username)
	sshDir := filepath.Join(home, ".ssh")

	if err := r.runStep(ctx, "Creating user "+opts.Username,
		"adduser", "--disabled-password", "--gecos", "", opts.Username); err != nil {
		return err
	}

	if opts.Sudo {
		if err := r.runStep(ctx, "Adding "+opts.Username+" to sudo group",
			"usermod", "-aG", "sudo", opts.Username); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		r.emit(StageError, "couldn't create "+sshDir, "")
		return errors.Wrap(err, errors.ErrSetup, "couldn't create "+sshDir)
	}

	if opts.SSHPublicKey != "" {
		authorizedKeys := filepath.Join(sshDir, "authorized_keys")
		if err := appendKey(authorizedKeys, opts.SSHPublicKey); err != nil {
			r.emit(StageError, "couldn't write authorized_keys", "")
			return err
		}
		r.emit(StageRunning, "Installed authorized_keys", "")
	}

	if opts.GenerateKey {
		keyPath := filepath.Join(sshDir, "id_ed25519")
		if err := r.runStep(ctx, "Generating SSH keypair",
			"ssh-keygen", "-t", "ed25519", "-f", keyPath, "-N", "", "-C", opts.Username); err != nil {
			return err
		}
	}

	owner := fmt.Sprintf("%s:%s", opts.Username, opts.Username)
	if err := r.runStep(ctx, "Fixing SSH directory ownership",
		"chown", "-R", owner, sshDir); err != nil {
		return err
	}

	r.emit(StageComplete, "User "+opts.Username+" provisioned", "")
	return nil
}

// appendKey appends a public key line to authorized_keys with 0600 perms.
func appendKey(path, key string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrap(err, errors.ErrSetup, "couldn't open "+path)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, key); err != nil {
		return errors.Wrap(err, errors.ErrSetup, "couldn't write "+path)
	}
	return nil
}
