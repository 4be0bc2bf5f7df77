package setup

import (
	"regexp"
	"strings"

	"github.com/nigeyuk/serverConfig/pkg/errors"
)

const (
	// MaxHostnameLength per RFC 1035.
	MaxHostnameLength = 253
	// MaxUsernameLength per useradd.
	MaxUsernameLength = 32
)

var (
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?)*$`)
	usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)
)

// ValidateHostname checks a hostname for syntax the tools downstream accept.
func ValidateHostname(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.ErrSetup, "hostname cannot be empty", "")
	}
	if len(name) > MaxHostnameLength {
		return errors.Newf(errors.ErrSetup, "hostname cannot exceed %d characters", MaxHostnameLength)
	}
	if !hostnamePattern.MatchString(name) {
		return errors.New(errors.ErrSetup,
			"hostname can only contain letters, numbers, hyphens, and dots",
			"labels must start and end with a letter or number")
	}
	return nil
}

// ValidateUsername checks a username against useradd's accepted syntax.
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.ErrSetup, "username cannot be empty", "")
	}
	if len(name) > MaxUsernameLength {
		return errors.Newf(errors.ErrSetup, "username cannot exceed %d characters", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(name) {
		return errors.New(errors.ErrSetup,
			"username can only contain lowercase letters, numbers, underscores, and hyphens",
			"it must start with a letter or underscore")
	}
	return nil
}

// ValidatePort checks a TCP port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.Newf(errors.ErrSetup, "port %d out of range [1,65535]", port)
	}
	return nil
}

// ValidateSwapSize checks a swap size in gigabytes.
func ValidateSwapSize(sizeGB int) error {
	if sizeGB < 1 {
		return errors.Newf(errors.ErrSetup, "swap size %dG must be at least 1G", sizeGB)
	}
	if sizeGB > 64 {
		return errors.Newf(errors.ErrSetup, "swap size %dG is larger than supported (64G)", sizeGB)
	}
	return nil
}
