package setup

import (
	"context"
	"fmt"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

// SwapFile is where the swap file is created.
const SwapFile = "/swapfile"

// SwapOptions configures swap file setup.
type SwapOptions struct {
	SizeGB     int
	Swappiness int // written to vm.swappiness; -1 leaves it untouched
}

// Swap creates and activates a swap file, persisting it in /etc/fstab.
func (r *Runner) Swap(ctx context.Context, opts SwapOptions) error {
	r.emit(StageValidating, "Validating swap options", "")
	if err := ValidateSwapSize(opts.SizeGB); err != nil {
		r.emit(StageError, err.Error(), "")
		return err
	}

	if r.executor.FileExists(SwapFile) {
		err := errors.New(errors.ErrSetup,
			SwapFile+" already exists",
			"run 'swapoff "+SwapFile+"' and remove it before setting up a new one")
		r.emit(StageError, err.Error(), "")
		return err
	}

	size := fmt.Sprintf("%dG", opts.SizeGB)
	if err := r.runStep(ctx, "Allocating "+size+" swap file",
		"fallocate", "-l", size, SwapFile); err != nil {
		// fallocate is unsupported on some filesystems, dd still works
		count := fmt.Sprintf("count=%d", opts.SizeGB*1024)
		if err := r.runStep(ctx, "Allocating swap file with dd",
			"dd", "if=/dev/zero", "of="+SwapFile, "bs=1M", count); err != nil {
			return err
		}
	}

	if err := r.runStep(ctx, "Restricting swap file permissions",
		"chmod", "600", SwapFile); err != nil {
		return err
	}
	if err := r.runStep(ctx, "Formatting swap file", "mkswap", SwapFile); err != nil {
		return err
	}
	if err := r.runStep(ctx, "Activating swap", "swapon", SwapFile); err != nil {
		return err
	}

	if err := r.appendLine(ctx, "Persisting swap in /etc/fstab",
		SwapFile+" none swap sw 0 0", "/etc/fstab"); err != nil {
		return err
	}

	if opts.Swappiness >= 0 {
		value := fmt.Sprintf("vm.swappiness=%d", opts.Swappiness)
		if err := r.runStep(ctx, "Setting "+value, "sysctl", value); err != nil {
			return err
		}
		if err := r.appendLine(ctx, "Persisting swappiness",
			value, "/etc/sysctl.conf"); err != nil {
			return err
		}
	}

	r.emit(StageComplete, "Swap file active", "")
	return nil
}
