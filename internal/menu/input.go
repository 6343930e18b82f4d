package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"tracknest/internal/model"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// ErrBack is returned when the user types "back" at a prompt to cancel the
// current action.
var ErrBack = errors.New("back")

// Prompt reads line-oriented input for the menus.
type Prompt struct {
	r *bufio.Reader
	w io.Writer
}

func NewPrompt(r io.Reader, w io.Writer) *Prompt {
	return &Prompt{r: bufio.NewReader(r), w: w}
}

// Line prints a label and reads one line, trimmed. Typing "back" cancels
// with ErrBack. If EOF occurs after some input was read, the partial line is
// returned.
func (p *Prompt) Line(label string) (string, error) {
	if _, err := fmt.Fprint(p.w, label); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "back") {
		return "", ErrBack
	}
	return line, nil
}

// NonEmpty re-prompts until the user enters something.
func (p *Prompt) NonEmpty(label string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(p.w, "Input cannot be empty.")
	}
}

// Int re-prompts until the user enters an integer in [min, max].
func (p *Prompt) Int(label string, min, max int) (int, error) {
	for {
		s, err := p.NonEmpty(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(s)
		if convErr != nil || n < min || n > max {
			fmt.Fprintf(p.w, "Enter a number between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

// Date re-prompts until the user enters a valid YYYY-MM-DD date.
func (p *Prompt) Date(label string) (time.Time, error) {
	for {
		s, err := p.NonEmpty(label)
		if err != nil {
			return time.Time{}, err
		}
		d, parseErr := model.ParseDate(s)
		if parseErr != nil {
			fmt.Fprintln(p.w, "Invalid date, use YYYY-MM-DD.")
			continue
		}
		return d, nil
	}
}

// Confirm asks for an explicit YES; anything else declines.
func (p *Prompt) Confirm(label string) (bool, error) {
	s, err := p.Line(label + " Type YES to confirm: ")
	if err != nil {
		return false, err
	}
	return s == "YES", nil
}

// Password reads a secret without echo when stdin is a terminal, falling
// back to a plain line read otherwise (pipes, tests).
func (p *Prompt) Password(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.NonEmpty(label)
	}
	if _, err := fmt.Fprint(p.w, label); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(p.w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Select prints a numbered menu and reads a choice.
func (p *Prompt) Select(title string, options []string) (int, error) {
	fmt.Fprintf(p.w, "\n=== %s ===\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.w, "%2d. %s\n", i+1, opt)
	}
	return p.Int("Choose: ", 1, len(options))
}
