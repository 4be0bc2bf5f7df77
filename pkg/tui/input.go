package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// PromptString asks for a single string value, re-prompting until validate
// passes. A nil validate accepts anything non-empty.
func PromptString(title, placeholder string, validate func(string) error) (string, error) {
	if validate == nil {
		validate = func(s string) error {
			if s == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Validate(validate).
				Value(&value),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	return value, nil
}

// PromptInt asks for an integer in [min, max].
func PromptInt(title string, min, max, defaultValue int) (int, error) {
	value := strconv.Itoa(defaultValue)

	validate := func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < min || n > max {
			return fmt.Errorf("enter a number between %d and %d", min, max)
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Validate(validate).
				Value(&value),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("input cancelled: %w", err)
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("input was not a number: %w", err)
	}
	return n, nil
}
