package invoice

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric form value. It decodes from JSON numbers, numeric
// strings and null. Anything malformed or non-finite decodes to 0 rather than
// failing, so a document from an old export or a half-typed form still loads.
type Number float64

// Float returns n as a float64, mapping NaN and ±Inf to 0.
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// String formats n with the minimal number of digits ("8.25", "1").
func (n Number) String() string {
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}

// MarshalJSON always emits a finite JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON never returns an error for well-formed JSON.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}
	*n = Number(ParseNumber(string(data)))
	return nil
}

// ParseNumber parses a form field. Empty, malformed and non-finite input all yield 0.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
