package ast

import "fmt"

// Booking is the lot-matching policy declared on an Open directive. The parser
// only records it; applying it against an inventory happens downstream.
type Booking uint8

const (
	BookingStrict Booking = iota
	BookingStrictWithSize
	BookingNone
	BookingAverage
	BookingFIFO
	BookingLIFO
	BookingHIFO
)

var bookingNames = [...]string{
	BookingStrict:         "STRICT",
	BookingStrictWithSize: "STRICT_WITH_SIZE",
	BookingNone:           "NONE",
	BookingAverage:        "AVERAGE",
	BookingFIFO:           "FIFO",
	BookingLIFO:           "LIFO",
	BookingHIFO:           "HIFO",
}

// ParseBooking converts a booking method name into a Booking. Names are matched
// exactly; anything else is an error.
func ParseBooking(s string) (Booking, error) {
	for b, name := range bookingNames {
		if name == s {
			return Booking(b), nil
		}
	}
	return 0, fmt.Errorf("unknown booking method %q", s)
}

func (b Booking) String() string {
	if int(b) < len(bookingNames) {
		return bookingNames[b]
	}
	return fmt.Sprintf("Booking(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Booking) MarshalText() ([]byte, error) {
	if int(b) >= len(bookingNames) {
		return nil, fmt.Errorf("invalid booking method %d", uint8(b))
	}
	return []byte(bookingNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Booking) UnmarshalText(text []byte) error {
	parsed, err := ParseBooking(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
