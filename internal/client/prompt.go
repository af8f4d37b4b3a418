package client

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for input.
type Prompter interface {
	Input(ctx context.Context, message string) (string, error)
	Password(ctx context.Context, message string) (string, error)
}

// SurveyPrompter prompts on the controlling terminal.
type SurveyPrompter struct{}

// Input asks for a required line of text.
func (SurveyPrompter) Input(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message}, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// Password asks for a required secret without echoing it.
func (SurveyPrompter) Password(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Password{Message: message}, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
