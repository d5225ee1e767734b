package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// errAborted is returned by a prompter when the operator presses Ctrl-C.
var errAborted = errors.New("aborted")

// prompter reads one line of input after showing a prompt.
// It returns io.EOF at end of input and errAborted on Ctrl-C.
type prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newPrompter returns a liner-backed prompter when stdin is the process
// terminal, and a plain line reader otherwise.
func newPrompter(stdin io.Reader, o *IO, historyPath string) prompter {
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		return newLinePrompter(historyPath)
	}

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	return &lineReader{scanner: bufio.NewScanner(stdin), io: o}
}

// lineReader prompts on IO and reads lines from a plain reader.
type lineReader struct {
	scanner *bufio.Scanner
	io      *IO
}

func (r *lineReader) Prompt(prompt string) (string, error) {
	r.io.Printf("%s", prompt)

	if !r.scanner.Scan() {
		r.io.Println()

		if err := r.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return r.scanner.Text(), nil
}

func (*lineReader) Close() error {
	return nil
}

// linePrompter wraps liner for readline-style editing with history.
type linePrompter struct {
	state       *liner.State
	historyPath string
}

func newLinePrompter(historyPath string) *linePrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completeMenuInput)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return &linePrompter{state: state, historyPath: historyPath}
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errAborted
	}

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}

	return line, nil
}

// Close saves history and restores the terminal.
func (p *linePrompter) Close() error {
	var histErr error

	if p.historyPath != "" {
		f, err := os.Create(p.historyPath)
		if err == nil {
			_, histErr = p.state.WriteHistory(f)
			histErr = errors.Join(histErr, f.Close())
		} else {
			histErr = err
		}
	}

	return errors.Join(histErr, p.state.Close())
}

// completeMenuInput completes search field names and status values.
func completeMenuInput(line string) []string {
	words := []string{"title", "author", "year", "available", "checked_out"}

	var completions []string

	lower := strings.ToLower(line)
	for _, word := range words {
		if strings.HasPrefix(word, lower) {
			completions = append(completions, word)
		}
	}

	return completions
}
