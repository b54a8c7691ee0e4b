package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/linestack/internal/engine"
)

const menuTitle = "==== STACK-BASED TEXT EDITOR ===="

// User-facing messages.
const (
	msgInserted    = "Data entered successfully in line %d."
	msgDeleted     = "Data deleted successfully from line %d."
	msgReplaced    = "Line %d replaced successfully."
	msgInvalidLine = "Invalid line number."
	msgNoLines     = "No lines to display."
	msgSaved       = "Saved data to '%s' successfully."
	msgNoUndo      = "No commands to undo."
	msgNoRedo      = "No commands to redo."
	msgUndone      = "Undone: %s."
	msgRedone      = "Redone: %s."
	msgCleared     = "Editor cleared."
	msgNoHistory   = "No history."
	msgExiting     = "Exiting editor."
	msgInvalid     = "Invalid choice."
	promptLine     = "Enter line number: "
	promptDelete   = "Enter line number to delete: "
	promptReplace  = "Enter line number to replace: "
	promptText     = "Enter text: "
	promptNewText  = "Enter new text: "
)

type menuItem struct {
	key    string
	label  string
	action func(*Application) error
}

// menu is in display order; Undo and Redo come before Save.
var menu = []menuItem{
	{"1", "Insert text into Line N", (*Application).handleInsert},
	{"2", "Delete line N", (*Application).handleDelete},
	{"3", "Replace text in Line N", (*Application).handleReplace},
	{"4", "Print all lines", (*Application).handlePrint},
	{"6", "Undo", (*Application).handleUndo},
	{"7", "Redo", (*Application).handleRedo},
	{"5", "Save to .txt file", (*Application).handleSave},
	{"8", "Clear editor", (*Application).handleClear},
	{"9", "Show history", (*Application).handleHistory},
	{"0", "Exit", func(*Application) error { return ErrQuit }},
}

// dispatch runs the action for choice. Only input failures and ErrQuit
// are returned; editing failures are reported and the loop continues.
func (app *Application) dispatch(choice string) error {
	item, err := lookupChoice(choice)
	if err != nil {
		app.printer.Failure(msgInvalid)
		app.log.Debug("menu choice rejected", "error", err)
		return nil
	}
	return item.action(app)
}

func lookupChoice(choice string) (menuItem, error) {
	choice = strings.TrimSpace(choice)
	for _, item := range menu {
		if item.key == choice {
			return item, nil
		}
	}
	return menuItem{}, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
}

// parseLineNumber accepts a base-10 integer, surrounding blanks allowed.
func parseLineNumber(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, invalidNumber(input)
	}
	return n, nil
}

// readLineNumber prompts for a line number. ok is false when the input is
// not an integer; the failure has already been reported.
func (app *Application) readLineNumber(prompt string) (n int, ok bool, err error) {
	input, err := app.prompter.Prompt(prompt)
	if err != nil {
		return 0, false, err
	}
	n, perr := parseLineNumber(input)
	if perr != nil {
		app.printer.Failure(msgInvalidLine)
		app.log.Debug("line number rejected", "error", perr)
		return 0, false, nil
	}
	return n, true, nil
}

func (app *Application) handleInsert() error {
	n, ok, err := app.readLineNumber(promptLine)
	if err != nil || !ok {
		return err
	}
	text, err := app.prompter.Prompt(promptText)
	if err != nil {
		return err
	}

	at, err := app.engine.Insert(n, text)
	if err != nil {
		app.reportEditError("insert", n, err)
		return nil
	}
	app.printer.Success(msgInserted, at)
	app.log.Debug("line inserted", "requested", n, "line", at)
	return nil
}

func (app *Application) handleDelete() error {
	n, ok, err := app.readLineNumber(promptDelete)
	if err != nil || !ok {
		return err
	}

	if err := app.engine.Delete(n); err != nil {
		app.reportEditError("delete", n, err)
		return nil
	}
	app.printer.Success(msgDeleted, n)
	app.log.Debug("line deleted", "line", n)
	return nil
}

func (app *Application) handleReplace() error {
	n, ok, err := app.readLineNumber(promptReplace)
	if err != nil || !ok {
		return err
	}
	text, err := app.prompter.Prompt(promptNewText)
	if err != nil {
		return err
	}

	if err := app.engine.Replace(n, text); err != nil {
		app.reportEditError("replace", n, err)
		return nil
	}
	app.printer.Success(msgReplaced, n)
	app.log.Debug("line replaced", "line", n)
	return nil
}

func (app *Application) handlePrint() error {
	app.printer.Buffer(app.engine.Lines())
	return nil
}

func (app *Application) handleSave() error {
	path := app.cfg.Editor.OutputPath
	if err := app.saver.Save(app.engine, path); err != nil {
		app.printer.Failure("Error: %v", err)
		app.log.Error("save failed", "path", path, "error", err)
		return nil
	}
	app.printer.Success(msgSaved, path)
	app.log.Info("saved", "path", path, "lines", app.engine.Len())
	return nil
}

func (app *Application) handleUndo() error {
	cmd, err := app.engine.Undo()
	switch {
	case errors.Is(err, engine.ErrNothingToUndo):
		app.printer.Plain(msgNoUndo)
	case err != nil:
		app.printer.Failure("Error: %v", err)
		app.log.Warn("undo failed", "error", err)
	default:
		app.printer.Success(msgUndone, cmd.Description())
		app.log.Debug("undo", "command", cmd.Kind.String(), "line", cmd.Line)
	}
	return nil
}

func (app *Application) handleRedo() error {
	cmd, err := app.engine.Redo()
	switch {
	case errors.Is(err, engine.ErrNothingToRedo):
		app.printer.Plain(msgNoRedo)
	case err != nil:
		app.printer.Failure("Error: %v", err)
		app.log.Warn("redo failed", "error", err)
	default:
		app.printer.Success(msgRedone, cmd.Description())
		app.log.Debug("redo", "command", cmd.Kind.String(), "line", cmd.Line)
	}
	return nil
}

func (app *Application) handleClear() error {
	app.engine.Clear()
	app.printer.Success(msgCleared)
	app.log.Debug("buffer cleared")
	return nil
}

func (app *Application) handleHistory() error {
	undo := app.engine.UndoInfo()
	redo := app.engine.RedoInfo()
	if len(undo) == 0 && len(redo) == 0 {
		app.printer.Plain(msgNoHistory)
		return nil
	}

	app.printer.Plain("Undo (%d):", len(undo))
	for i := len(undo) - 1; i >= 0; i-- {
		app.printer.Plain("  %s", undo[i].Description)
	}
	app.printer.Plain("Redo (%d):", len(redo))
	for i := len(redo) - 1; i >= 0; i-- {
		app.printer.Plain("  %s", redo[i].Description)
	}
	return nil
}

func (app *Application) reportEditError(op string, line int, err error) {
	if errors.Is(err, engine.ErrInvalidLine) {
		app.printer.Failure(msgInvalidLine)
		app.log.Debug("invalid line", "op", op, "line", line)
		return
	}
	opErr := NewOpError(op, lineTarget(line), err)
	app.printer.Failure("Error: %v", opErr)
	app.log.Warn("edit failed", "op", op, "line", line, "error", err)
}
