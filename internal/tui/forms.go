package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/constants"
)

// NewSubjectForm creates the add/change form
func NewSubjectForm(fm *SubjectFormModel) *huh.Form {
	title := "New task"
	if fm.Index > 0 {
		title = "Change task"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				CharLimit(constants.SubjectMaxLen).
				Value(&fm.Subject).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("subject must not be empty")
					}
					return nil
				}),
		),
	).WithShowHelp(false)
}

// NewConfirmationForm creates a yes/no form defaulting to no
func NewConfirmationForm(cf *ConfirmFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(cf.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&cf.Confirmed),
		),
	).WithShowHelp(false)
}
