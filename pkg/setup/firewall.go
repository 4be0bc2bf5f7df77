package setup

import (
	"context"
	"fmt"
)

// FirewallOptions configures ufw setup.
type FirewallOptions struct {
	SSHPort    int      // always allowed so the operator isn't locked out
	ExtraRules []string // additional `ufw allow` arguments, e.g. "80/tcp"
}

// Firewall applies a deny-by-default ufw policy with SSH kept open.
func (r *Runner) Firewall(ctx context.Context, opts FirewallOptions) error {
	r.emit(StageValidating, "Validating firewall options", "")
	if err := ValidatePort(opts.SSHPort); err != nil {
		r.emit(StageError, err.Error(), "")
		return err
	}

	if err := r.runStep(ctx, "Denying incoming traffic by default",
		"ufw", "default", "deny", "incoming"); err != nil {
		return err
	}
	if err := r.runStep(ctx, "Allowing outgoing traffic by default",
		"ufw", "default", "allow", "outgoing"); err != nil {
		return err
	}

	sshRule := fmt.Sprintf("%d/tcp", opts.SSHPort)
	if err := r.runStep(ctx, "Allowing SSH on port "+sshRule,
		"ufw", "allow", sshRule); err != nil {
		return err
	}

	for _, rule := range opts.ExtraRules {
		if err := r.runStep(ctx, "Allowing "+rule, "ufw", "allow", rule); err != nil {
			return err
		}
	}

	// --force skips ufw's own interactive prompt; confirmation already
	// happened in the menu
	if err := r.runStep(ctx, "Enabling firewall", "ufw", "--force", "enable"); err != nil {
		return err
	}

	r.emit(StageComplete, "Firewall enabled", "")
	return nil
}
