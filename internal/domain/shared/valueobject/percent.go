package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a value object for markup and discount percentages
type Percent struct {
	value decimal.Decimal
}

// NewPercent creates a Percent from a decimal value
func NewPercent(value decimal.Decimal) Percent {
	return Percent{value: value}
}

// NewPercentFromFloat creates a Percent from a float64 value
func NewPercentFromFloat(value float64) Percent {
	return Percent{value: decimal.NewFromFloat(value)}
}

// NewPercentFromString creates a Percent from a string representation
func NewPercentFromString(value string) (Percent, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percent string: %w", err)
	}
	return Percent{value: d}, nil
}

// ZeroPercent returns a zero percent value
func ZeroPercent() Percent {
	return Percent{value: decimal.Zero}
}

// Value returns the underlying decimal value
func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

// IsZero returns true if the percent is zero
func (p Percent) IsZero() bool {
	return p.value.IsZero()
}

// IsNegative returns true if the percent is negative
func (p Percent) IsNegative() bool {
	return p.value.IsNegative()
}

// Add returns the sum of two percents
func (p Percent) Add(other Percent) Percent {
	return Percent{value: p.value.Add(other.value)}
}

// CapAt returns this percent limited to the given maximum
func (p Percent) CapAt(max Percent) Percent {
	if p.value.GreaterThan(max.value) {
		return max
	}
	return p
}

// FloorAtZero returns this percent raised to zero if negative
func (p Percent) FloorAtZero() Percent {
	if p.value.IsNegative() {
		return ZeroPercent()
	}
	return p
}

// Equals returns true if both percents have the same value
func (p Percent) Equals(other Percent) bool {
	return p.value.Equal(other.value)
}

// String returns the percent as a string with two decimal places
func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

// Float64 returns the percent as a float64 (may lose precision)
func (p Percent) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// MarshalJSON implements json.Marshaler
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Percent) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid percent: %w", err)
	}
	p.value = d
	return nil
}

// Value implements driver.Valuer for database storage
func (p Percent) Value() (driver.Value, error) {
	return p.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *Percent) Scan(value any) error {
	if value == nil {
		p.value = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		strVal = decimal.NewFromFloat(v).String()
	case int64:
		strVal = decimal.NewFromInt(v).String()
	default:
		return fmt.Errorf("cannot scan %T into Percent", value)
	}

	d, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	p.value = d
	return nil
}
