// Package console parses the line commands accepted on the panel's serial port.
//
//	A<mV>   amplitude        B<mV>  offset       C<Hz>  frequency
//	W<0-3>  waveform         K<0-15> inject key  S      status
//	E0/E1   generator off/on
//
// Anything after ';' is a comment.
package console

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadValue       = errors.New("malformed value")
	ErrMissingValue   = errors.New("missing value")
)

// Command represents a parsed console line
type Command struct {
	Letter   byte // Upper-case command letter
	Value    int
	HasValue bool
	Comment  string
}

// commands lists the accepted letters and whether each needs a value
var commands = map[byte]bool{
	'A': true,
	'B': true,
	'C': true,
	'W': true,
	'K': true,
	'E': true,
	'S': false,
}

// Parser handles console line parsing
type Parser struct{}

// NewParser creates a new console parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine parses a single console line. Blank and comment-only lines
// return a nil command and no error.
func (p *Parser) ParseLine(line string) (*Command, error) {
	i := skipSpace(line, 0)
	if i >= len(line) || line[i] == ';' {
		return nil, nil
	}

	if !isLetter(line[i]) {
		return nil, ErrUnknownCommand
	}
	cmd := &Command{Letter: toUpper(line[i])}
	needsValue, ok := commands[cmd.Letter]
	if !ok {
		return nil, ErrUnknownCommand
	}
	i = skipSpace(line, i+1)

	// Parse value
	if i < len(line) && line[i] != ';' {
		value, newPos := parseInt(line, i)
		if newPos <= i {
			return nil, ErrBadValue
		}
		cmd.Value = value
		cmd.HasValue = true
		i = skipSpace(line, newPos)
	}

	if i < len(line) {
		if line[i] != ';' {
			return nil, ErrBadValue
		}
		cmd.Comment = line[i:]
	}

	if needsValue && !cmd.HasValue {
		return nil, ErrMissingValue
	}

	return cmd, nil
}

// parseInt parses an integer from the string starting at pos
func parseInt(s string, pos int) (int, int) {
	if pos >= len(s) {
		return 0, pos
	}

	negative := false
	if s[pos] == '-' {
		negative = true
		pos++
	} else if s[pos] == '+' {
		pos++
	}

	start := pos
	value := 0

	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		value = value*10 + int(s[pos]-'0')
		if value > 1<<30 {
			return 0, start - 1 // Overflow
		}
		pos++
	}

	if pos == start {
		return 0, start - 1 // No digits found
	}

	if negative {
		value = -value
	}

	return value, pos
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// isLetter checks if a byte is a letter
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// toUpper converts a byte to uppercase
func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
