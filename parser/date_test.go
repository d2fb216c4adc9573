package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name          string
		year          int
		month         int
		day           int
		expectedError bool
	}{
		{"Valid", 2014, 5, 1, false},
		{"LeapDay", 2024, 2, 29, false},
		{"NotLeapYear", 2023, 2, 29, true},
		{"February30", 2023, 2, 30, true},
		{"Month13", 2023, 13, 1, true},
		{"Month0", 2023, 0, 10, true},
		{"Day0", 2023, 1, 0, true},
		{"April31", 2023, 4, 31, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			date, err := ResolveDate(test.year, test.month, test.day)
			if test.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDate))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, time.Date(test.year, time.Month(test.month), test.day, 0, 0, 0, 0, time.UTC), date.Time)
		})
	}
}

func TestResolveDateMessage(t *testing.T) {
	_, err := ResolveDate(2023, 2, 30)
	assert.EqualError(t, err, "invalid date: 2023-02-30")
}

func TestParseInvalidDate(t *testing.T) {
	_, err := Parse("2023-02-30 open Assets:Cash\n")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 1, perr.Pos.Column)
}

func TestParseSlashDate(t *testing.T) {
	file, err := Parse("2014/05/01 open Assets:Cash\n")
	assert.NoError(t, err)
	assert.Equal(t, "2014-05-01 open Assets:Cash\n", render(file))
}
