package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/getmockd/userdesk/pkg/record"
)

// interactive reports whether prompts can be shown.
var interactive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// runUserForm asks for the three user fields, starting from in.
func runUserForm(title string, in record.UserInput) (record.UserInput, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Placeholder("Ana López").
				Value(&in.FullName).
				Validate(required("full name")),
			huh.NewInput().
				Title("Email").
				Placeholder("ana@example.com").
				Value(&in.Email).
				Validate(required("email")),
			huh.NewInput().
				Title("Phone").
				Placeholder("+52 777 123 4567").
				Value(&in.Phone).
				Validate(required("phone")),
		).Title(title),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return in, ErrAborted
		}
		return in, err
	}
	return in, nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
