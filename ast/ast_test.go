package ast

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestBookingRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
	}{
		{"STRICT", BookingStrict},
		{"STRICT_WITH_SIZE", BookingStrictWithSize},
		{"NONE", BookingNone},
		{"AVERAGE", BookingAverage},
		{"FIFO", BookingFIFO},
		{"LIFO", BookingLIFO},
		{"HIFO", BookingHIFO},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parsed, err := ParseBooking(test.name)
			assert.NoError(t, err)
			assert.Equal(t, test.booking, parsed)
			assert.Equal(t, test.name, parsed.String())

			text, err := parsed.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, test.name, string(text))

			var unmarshaled Booking
			assert.NoError(t, unmarshaled.UnmarshalText(text))
			assert.Equal(t, test.booking, unmarshaled)
		})
	}
}

func TestBookingUnknown(t *testing.T) {
	for _, name := range []string{"BOGUS", "fifo", "", "Fifo"} {
		_, err := ParseBooking(name)
		assert.Error(t, err)
	}

	_, err := Booking(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Booking(42)", Booking(42).String())
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2.00", "2.00"},
		{"-37.45", "-37.45"},
		{"100", "100"},
		{"0.000001", "0.000001"},
		{"1234567.8900", "1234567.8900"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatDecimal(decimal.RequireFromString(test.input)))
		})
	}
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "10.50 USD", NewAmount(decimal.RequireFromString("10.50"), "USD").String())
	assert.Equal(t, "USD", (&Amount{Currency: "USD"}).String())
	assert.Equal(t, "", (*Amount)(nil).String())

	assert.True(t, NewAmount(decimal.Zero, "EUR").HasNumber())
	assert.False(t, (&Amount{Currency: "EUR"}).HasNumber())
	assert.False(t, (*Amount)(nil).HasNumber())
}

func TestDateString(t *testing.T) {
	d := Date{time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2014-05-01", d.String())
}

func TestSet(t *testing.T) {
	s := NewSet("trip", "berlin")
	s.Add("food")
	s.Add("trip")

	assert.Equal(t, 3, len(s))
	assert.True(t, s.Has("food"))
	assert.False(t, s.Has("#food"))
	assert.Equal(t, []string{"berlin", "food", "trip"}, s.Sorted())
}

func TestMetadataKeys(t *testing.T) {
	meta := Metadata{"lineno": "3", "category": "food", "filename": "main.beancount"}
	assert.Equal(t, []string{"category", "filename", "lineno"}, meta.Keys())
}

func TestCostSpecIsEmpty(t *testing.T) {
	assert.True(t, (&CostSpec{}).IsEmpty())
	assert.False(t, (*CostSpec)(nil).IsEmpty())
	assert.False(t, (&CostSpec{Merge: true}).IsEmpty())
	assert.False(t, (&CostSpec{Currency: "USD"}).IsEmpty())
	assert.False(t, (&CostSpec{NumberPer: decimal.NewNullDecimal(decimal.NewFromInt(1))}).IsEmpty())
}

func TestFileOption(t *testing.T) {
	file := &File{
		Options: []*Option{
			{Name: "title", Value: "First"},
			{Name: "operating_currency", Value: "USD"},
			{Name: "title", Value: "Second"},
		},
	}

	value, ok := file.Option("title")
	assert.True(t, ok)
	assert.Equal(t, "Second", value)

	_, ok = file.Option("booking_method")
	assert.False(t, ok)
}

func TestFileTransactions(t *testing.T) {
	txn := &Transaction{Narration: "Lunch"}
	file := &File{Directives: []Directive{&Open{Account: "Assets:Cash"}, txn, &Close{Account: "Assets:Cash"}}}

	assert.Equal(t, []*Transaction{txn}, file.Transactions())
}

func TestDirectiveKinds(t *testing.T) {
	tests := []struct {
		directive Directive
		kind      Kind
		name      string
	}{
		{&Open{}, KindOpen, "open"},
		{&Close{}, KindClose, "close"},
		{&Commodity{}, KindCommodity, "commodity"},
		{&Transaction{}, KindTransaction, "transaction"},
		{&Pad{}, KindPad, "pad"},
		{&Balance{}, KindBalance, "balance"},
		{&Price{}, KindPrice, "price"},
		{&Event{}, KindEvent, "event"},
		{&Plugin{}, KindPlugin, "plugin"},
		{&Option{}, KindOption, "option"},
		{&Custom{}, KindCustom, "custom"},
		{&Note{}, KindNote, "note"},
		{&Document{}, KindDocument, "document"},
		{&Query{}, KindQuery, "query"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.kind, test.directive.Kind())
			assert.Equal(t, test.name, test.directive.Kind().String())
		})
	}

	assert.Equal(t, Metadata(nil), (&Plugin{}).Metadata())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:5", Position{Line: 3, Column: 5}.String())
	assert.Equal(t, "main.beancount:3:5", Position{Filename: "main.beancount", Line: 3, Column: 5}.String())
	assert.True(t, Position{}.IsZero())
	assert.False(t, Position{Line: 1}.IsZero())
}
