package shell

import (
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/term"
)

// Terminal seams, stubbed in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine prompts and reads one line, trimming surrounding whitespace. A
// final unterminated line before EOF is still returned.
func (s *Shell) readLine(prompt string) (string, error) {
	s.printf("%s: ", prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret prompts and reads a line without echo when stdin is a
// terminal. Piped input (scripts, tests) falls back to a plain line read.
func (s *Shell) readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return s.readLine(prompt)
	}

	s.printf("%s: ", prompt)
	b, err := readPassword(fd)
	s.printf("\n")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
