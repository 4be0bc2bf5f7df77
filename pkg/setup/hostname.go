package setup

import (
	"context"
	"fmt"
	"strings"
)

// Hostname changes the system hostname and rewrites /etc/hosts to match.
func (r *Runner) Hostname(ctx context.Context, newName string) error {
	r.emit(StageValidating, "Validating hostname", "")
	if err := ValidateHostname(newName); err != nil {
		r.emit(StageError, err.Error(), "")
		return err
	}

	current, err := r.executor.Run("hostname")
	if err != nil {
		r.emit(StageError, "couldn't read current hostname", "hostname")
		return err
	}
	current = strings.TrimSpace(current)

	if err := r.runStep(ctx, "Setting hostname", "hostnamectl", "set-hostname", newName); err != nil {
		return err
	}

	if current != "" && current != newName {
		sedExpr := fmt.Sprintf("s/\\b%s\\b/%s/g", current, newName)
		if err := r.runStep(ctx, "Updating /etc/hosts", "sed", "-i", sedExpr, "/etc/hosts"); err != nil {
			return err
		}
	}

	r.emit(StageComplete, "Hostname changed to "+newName, "")
	return nil
}
