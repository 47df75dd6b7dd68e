package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/oneconcern/l10nsync/pkg/errors"
)

// ConfirmationPrompt is displayed when asking the user to go on with an import
const ConfirmationPrompt = "Enter Y to continue: "

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a plain function to a Confirmer
type ConfirmFunc func(string) (bool, error)

// Confirm with the user
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// TerminalConfirmer prompts on an output and reads a single line as the answer.
// Only "y" or "yes" (in any case) are positive answers.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalConfirmer builds a Confirmer reading answers from in
func NewTerminalConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prompts then waits for an answer. An empty input is a negative answer.
func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return false, err
	}
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// SafeModeGate protects a non-empty root directory from being overwritten without the user's consent
type SafeModeGate struct {
	fs        afero.Fs
	confirmer Confirmer
	out       io.Writer
}

// NewSafeModeGate builds a gate, warning the user on out
func NewSafeModeGate(fs afero.Fs, confirmer Confirmer, out io.Writer) *SafeModeGate {
	return &SafeModeGate{
		fs:        fs,
		confirmer: confirmer,
		out:       out,
	}
}

// Confirm returns true when the root directory holds no file at any depth, or when the user agrees to proceed.
//
// The user is asked only when some file is found.
func (g *SafeModeGate) Confirm(root string) (bool, error) {
	empty, err := isEmptyTree(g.fs, root)
	if err != nil {
		return false, err
	}
	if empty {
		return true, nil
	}
	warning := color.New(color.FgYellow, color.Bold)
	if _, err := warning.Fprintf(g.out, "The target directory %s is not empty!\n", root); err != nil {
		return false, err
	}
	return g.confirmer.Confirm(ConfirmationPrompt)
}

var errFoundFile = errors.New("found file")

// isEmptyTree tells if a directory tree holds no file. Empty sub-directories do not count.
func isEmptyTree(fs afero.Fs, root string) (bool, error) {
	err := afero.Walk(fs, root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errFoundFile
		}
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errFoundFile):
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}
