// internal/ui/prompt.go
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Prompter reads typed values from an interactive input stream, re-prompting
// until the input parses. All raw-text parsing lives here; the core services
// only ever see already-typed values.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// NonEmptyString prompts until a non-blank line is entered.
func (p *Prompter) NonEmptyString(label string) (string, error) {
	for {
		value, err := p.readLine(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(p.out, "[ERROR] The field cannot be empty. Try again.")
	}
}

// PositiveInt prompts until a strictly positive integer is entered.
func (p *Prompter) PositiveInt(label string) (int, error) {
	for {
		value, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(value)
		if convErr != nil {
			fmt.Fprintln(p.out, "[ERROR] Enter a valid whole number. Try again.")
			continue
		}
		if n <= 0 {
			fmt.Fprintln(p.out, "[ERROR] The value must be a positive number. Try again.")
			continue
		}
		return n, nil
	}
}

// NonNegativeDecimal prompts until a decimal >= 0 is entered. A comma decimal
// separator is accepted and normalized to a dot.
func (p *Prompter) NonNegativeDecimal(label string) (decimal.Decimal, error) {
	for {
		value, err := p.readLine(label)
		if err != nil {
			return decimal.Zero, err
		}
		value = strings.ReplaceAll(value, ",", ".")
		d, convErr := decimal.NewFromString(value)
		if convErr != nil {
			fmt.Fprintln(p.out, "[ERROR] Enter a valid number. Try again.")
			continue
		}
		if d.IsNegative() {
			fmt.Fprintln(p.out, "[ERROR] The value must not be negative. Try again.")
			continue
		}
		return d, nil
	}
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
