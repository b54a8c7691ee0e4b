package app

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// Prompter reads one line of input after showing a prompt.
//
// Prompt returns ErrQuit when input ends or the user aborts.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// LinePrompter reads from the terminal with line editing.
type LinePrompter struct {
	state *liner.State
}

// NewLinePrompter puts the terminal in line editing mode. Close restores it.
func NewLinePrompter() *LinePrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinePrompter{state: state}
}

// Prompt shows prompt and returns the entered line. Non-empty lines are
// added to the input history.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrQuit
		}
		return "", err
	}
	if line != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	return p.state.Close()
}
