package ui

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("operation cancelled by user")

// ConfirmPrompt asks a yes/no confirmation question
func ConfirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil {
		switch {
		case errors.Is(err, promptui.ErrAbort):
			// "n" or an empty answer
			return false, nil
		case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
			return false, ErrCancelled
		}
		return false, err
	}

	// promptui returns "y" for yes
	return result == "y" || result == "Y", nil
}
