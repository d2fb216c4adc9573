package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestEvaluateExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
	}{
		{"Number", "42", decimal.NewFromInt(42)},
		{"Decimal", "37.45", decimal.RequireFromString("37.45")},
		{"ThousandsSeparator", "1,234,567.89", decimal.RequireFromString("1234567.89")},
		{"Addition", "2+2", decimal.NewFromInt(4)},
		{"Subtraction", "10 - 2.5", decimal.RequireFromString("7.5")},
		{"Precedence", "2 + 3 * 4", decimal.NewFromInt(14)},
		{"Parentheses", "(2 + 3) * 4", decimal.NewFromInt(20)},
		{"LeftAssociative", "10 - 4 - 3", decimal.NewFromInt(3)},
		{"UnaryMinus", "-5", decimal.NewFromInt(-5)},
		{"UnaryPlus", "+5", decimal.NewFromInt(5)},
		{"DoubleNegation", "--5", decimal.NewFromInt(5)},
		{"NegatedGroup", "-(2 + 3)", decimal.NewFromInt(-5)},
		{"Division", "10 / 4", decimal.RequireFromString("2.5")},
		{
			"DivisionThenAddition", "(40.00/3) + 5",
			decimal.RequireFromString("40.00").Div(decimal.NewFromInt(3)).Add(decimal.NewFromInt(5)),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			value, err := EvaluateExpression(test.input)
			assert.NoError(t, err)
			assert.True(t, test.expected.Equal(value), "expected %s, got %s", test.expected, value)
		})
	}
}

func TestEvaluateExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fail  string
	}{
		{"TrailingOperator", "1+", "1:3: expected number, got end of line"},
		{"DivisionByZero", "1/0", "1:2: division by zero"},
		{"DivisionByZeroExpression", "5 / (2 - 2)", "1:3: division by zero"},
		{"UnclosedParenthesis", "(1 + 2", "1:7: expected ')' to close expression opened at column 1"},
		{"TrailingTokens", "1 2", "1:3: unexpected number \"2\" after expression"},
		{"Empty", "", "1:1: expected number, got end of line"},
		{"NotANumber", "USD", "1:1: expected number, got ident \"USD\""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := EvaluateExpression(test.input)
			assert.EqualError(t, err, test.fail)
			assert.True(t, errors.Is(err, ErrInvalidDecimal))
		})
	}
}
