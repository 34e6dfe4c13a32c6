// Package cif implements the CIF (Caltech Intermediate Form) adapter: a
// lexer and parser for the accepted input subset, and a writer for the
// fixed output grammar.
package cif

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/pkg/textutil"
)

// ErrMalformedCIF is returned for the input defects the adapter treats as
// fatal: a P command with an odd or fewer than six coordinates, a DS block
// with no valid P, a non-integer coordinate, or input that looks binary.
var ErrMalformedCIF = errors.New("malformed CIF")

// Command is one semicolon-delimited CIF command, split into its uppercased
// opcode and the remaining whitespace-separated fields.
type Command struct {
	Op     string
	Fields []string
}

// Lex reads r in full and splits it into Commands. CIF is whitespace
// insensitive and commands may span multiple lines; ';' is the
// unconditional terminator. The conventional bare trailing "E" (with no
// semicolon) is captured too.
func Lex(r io.Reader) ([]Command, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read CIF input: %w", err)
	}

	if textutil.IsBinary(data) {
		return nil, fmt.Errorf("%w: input looks binary, not CIF text", ErrMalformedCIF)
	}

	var cmds []Command

	for _, raw := range splitCommands(string(data)) {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}

		cmds = append(cmds, Command{Op: strings.ToUpper(fields[0]), Fields: fields[1:]})
	}

	return cmds, nil
}

func splitCommands(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}

	return out
}
