package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// SubjectPrompter reads a task subject with a huh input field.
type SubjectPrompter struct {
	Title string
}

func (p SubjectPrompter) PromptText(max int) (string, error) {
	var subject string
	err := huh.NewInput().
		Title(p.Title).
		CharLimit(max).
		Value(&subject).
		Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(subject), nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
