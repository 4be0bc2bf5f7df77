package setup

import "context"

// SystemUpdate refreshes the package index and upgrades installed packages.
func (r *Runner) SystemUpdate(ctx context.Context, aptCommand string) error {
	if err := r.runStep(ctx, "Refreshing package index", aptCommand, "update"); err != nil {
		return err
	}
	if err := r.runStep(ctx, "Upgrading installed packages", aptCommand, "dist-upgrade", "-y"); err != nil {
		return err
	}
	r.emit(StageComplete, "System update complete", "")
	return nil
}
