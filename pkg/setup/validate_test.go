package setup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHostname(t *testing.T) {
	valid := []string{"web01", "db-primary", "host.example.com", "a", "srv2.local"}
	for _, name := range valid {
		assert.NoError(t, ValidateHostname(name), name)
	}

	invalid := []string{"", "-leading", "trailing-", "under_score", "two..dots",
		"spaced name", strings.Repeat("a", 300)}
	for _, name := range invalid {
		assert.Error(t, ValidateHostname(name), "%q should be rejected", name)
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"deploy", "web_admin", "_svc", "user2", "a-b"}
	for _, name := range valid {
		assert.NoError(t, ValidateUsername(name), name)
	}

	invalid := []string{"", "Root", "2user", "-dash", "has space",
		strings.Repeat("a", 40)}
	for _, name := range invalid {
		assert.Error(t, ValidateUsername(name), "%q should be rejected", name)
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(22))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(-5))
	assert.Error(t, ValidatePort(70000))
}

func TestValidateSwapSize(t *testing.T) {
	assert.NoError(t, ValidateSwapSize(1))
	assert.NoError(t, ValidateSwapSize(64))
	assert.Error(t, ValidateSwapSize(0))
	assert.Error(t, ValidateSwapSize(65))
}
