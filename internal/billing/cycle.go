package billing

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCycle is returned when a value does not name a billing cycle.
var ErrUnknownCycle = errors.New("unknown billing cycle")

// Cycle is the recurrence period of a charge. The set of cycles is closed:
// only Weekly, Monthly and Yearly exist, and the zero value means unset.
type Cycle struct {
	name string
}

var (
	Weekly  = Cycle{name: "weekly"}
	Monthly = Cycle{name: "monthly"}
	Yearly  = Cycle{name: "yearly"}
)

// Cycles lists every valid cycle.
func Cycles() []Cycle {
	return []Cycle{Weekly, Monthly, Yearly}
}

// ParseCycle maps a case-insensitive cycle name to its Cycle.
func ParseCycle(value string) (Cycle, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case Weekly.name:
		return Weekly, nil
	case Monthly.name:
		return Monthly, nil
	case Yearly.name:
		return Yearly, nil
	}
	return Cycle{}, fmt.Errorf("%w: %q", ErrUnknownCycle, value)
}

func (c Cycle) String() string {
	return c.name
}

// IsZero reports whether the cycle is unset.
func (c Cycle) IsZero() bool {
	return c.name == ""
}

func (c Cycle) MarshalText() ([]byte, error) {
	return []byte(c.name), nil
}

func (c *Cycle) UnmarshalText(text []byte) error {
	parsed, err := ParseCycle(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores the cycle by name.
func (c Cycle) Value() (driver.Value, error) {
	return c.name, nil
}

// Scan reads a cycle name written by Value.
func (c *Cycle) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	case nil:
		*c = Cycle{}
		return nil
	}
	return fmt.Errorf("scan billing cycle: unsupported type %T", src)
}
