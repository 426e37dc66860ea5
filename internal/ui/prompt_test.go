// internal/ui/prompt_test.go
package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/biomarket-be/internal/ui"
)

func TestPrompter_NonEmptyString_RepromptsOnBlank(t *testing.T) {
	var out bytes.Buffer
	p := ui.NewPrompter(strings.NewReader("\n   \nApples\n"), &out)

	value, err := p.NonEmptyString("Product name: ")

	require.NoError(t, err)
	assert.Equal(t, "Apples", value)
	assert.Contains(t, out.String(), "cannot be empty")
}

func TestPrompter_PositiveInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "valid_first_try", input: "50\n", want: 50},
		{name: "rejects_zero_then_accepts", input: "0\n7\n", want: 7},
		{name: "rejects_negative_then_accepts", input: "-3\n7\n", want: 7},
		{name: "rejects_text_then_accepts", input: "many\n7\n", want: 7},
		{name: "rejects_decimal_then_accepts", input: "2.5\n7\n", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := ui.NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.PositiveInt("Quantity: ")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_NonNegativeDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dot_separator", input: "0.80\n", want: "0.8"},
		{name: "comma_separator_normalized", input: "1,50\n", want: "1.5"},
		{name: "zero_is_allowed", input: "0\n", want: "0"},
		{name: "rejects_negative_then_accepts", input: "-1\n0.5\n", want: "0.5"},
		{name: "rejects_text_then_accepts", input: "cheap\n0.5\n", want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := ui.NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.NonNegativeDecimal("Price: ")

			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestPrompter_PropagatesEndOfInput(t *testing.T) {
	var out bytes.Buffer
	p := ui.NewPrompter(strings.NewReader(""), &out)

	_, err := p.NonEmptyString("Product name: ")

	require.Error(t, err)
}
