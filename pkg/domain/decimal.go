package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Decimal holds a numeric value the API may encode either as a JSON number or
// as a string (Python Decimal). The original text is kept for display.
type Decimal string

// UnmarshalJSON accepts 12, 12.50 and "12.50".
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// Float returns the numeric value, or 0 when it cannot be parsed.
func (d Decimal) Float() float64 {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return f
}
