package setup

import (
	"context"
	"fmt"
)

// SSHDConfig is the sshd configuration file edited during hardening.
const SSHDConfig = "/etc/ssh/sshd_config"

// SSHOptions configures SSH install and hardening.
type SSHOptions struct {
	Install             bool // install openssh-server first
	Port                int
	DisableRootLogin    bool
	DisablePasswordAuth bool
	AptCommand          string // used when Install is set
}

// HardenSSH installs and reconfigures the SSH daemon. The edited config is
// validated with `sshd -t` before the service restarts, so a bad edit never
// takes the daemon down.
func (r *Runner) HardenSSH(ctx context.Context, opts SSHOptions) error {
	r.emit(StageValidating, "Validating SSH options", "")
	if err := ValidatePort(opts.Port); err != nil {
		r.emit(StageError, err.Error(), "")
		return err
	}

	if opts.Install {
		aptCommand := opts.AptCommand
		if aptCommand == "" {
			aptCommand = "apt-get"
		}
		if err := r.runStep(ctx, "Installing openssh-server",
			aptCommand, "install", "-y", "openssh-server"); err != nil {
			return err
		}
	}

	portExpr := fmt.Sprintf("s/^#\\?Port .*/Port %d/", opts.Port)
	if err := r.runStep(ctx, fmt.Sprintf("Setting SSH port to %d", opts.Port),
		"sed", "-i", portExpr, SSHDConfig); err != nil {
		return err
	}

	if opts.DisableRootLogin {
		if err := r.runStep(ctx, "Disabling root login",
			"sed", "-i", "s/^#\\?PermitRootLogin .*/PermitRootLogin no/", SSHDConfig); err != nil {
			return err
		}
	}

	if opts.DisablePasswordAuth {
		if err := r.runStep(ctx, "Disabling password authentication",
			"sed", "-i", "s/^#\\?PasswordAuthentication .*/PasswordAuthentication no/", SSHDConfig); err != nil {
			return err
		}
	}

	if err := r.runStep(ctx, "Validating sshd configuration", "sshd", "-t"); err != nil {
		return err
	}

	if err := r.runStep(ctx, "Restarting SSH daemon",
		"systemctl", "restart", "ssh"); err != nil {
		return err
	}

	r.emit(StageComplete, fmt.Sprintf("SSH listening on port %d", opts.Port), "")
	return nil
}
