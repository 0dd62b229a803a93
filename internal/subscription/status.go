package subscription

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus is returned when a value does not name a status.
var ErrUnknownStatus = errors.New("unknown subscription status")

// Status is the lifecycle state of a subscription. Only Active,
// Paused and Cancelled exist; the zero value means unset.
type Status struct {
	name string
}

var (
	Active    = Status{name: "active"}
	Paused    = Status{name: "paused"}
	Cancelled = Status{name: "cancelled"}
)

// Statuses lists every valid status.
func Statuses() []Status {
	return []Status{Active, Paused, Cancelled}
}

// ParseStatus maps a case-insensitive status name to its Status.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case Active.name:
		return Active, nil
	case Paused.name:
		return Paused, nil
	case Cancelled.name:
		return Cancelled, nil
	}
	return Status{}, fmt.Errorf("%w: %q", ErrUnknownStatus, value)
}

func (s Status) String() string {
	return s.name
}

// IsZero reports whether the status is unset.
func (s Status) IsZero() bool {
	return s.name == ""
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the status by name.
func (s Status) Value() (driver.Value, error) {
	return s.name, nil
}

// Scan reads a status name written by Value.
func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	case nil:
		*s = Status{}
		return nil
	}
	return fmt.Errorf("scan subscription status: unsupported type %T", src)
}
