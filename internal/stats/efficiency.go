package stats

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Efficiency is a success/attempts ratio.
// With zero attempts it is undefined, which charts render as a gap rather than 0%.
type Efficiency struct {
	Success  int
	Attempts int
}

// NewEfficiency builds the ratio success/attempts.
func NewEfficiency(success, attempts int) Efficiency {
	return Efficiency{Success: success, Attempts: attempts}
}

// Defined reports whether there was at least one attempt.
func (e Efficiency) Defined() bool {
	return e.Attempts > 0
}

// Rat returns the exact ratio. ok is false when undefined.
func (e Efficiency) Rat() (r *big.Rat, ok bool) {
	if !e.Defined() {
		return nil, false
	}
	return big.NewRat(int64(e.Success), int64(e.Attempts)), true
}

// Float returns the ratio as a float. ok is false when undefined.
func (e Efficiency) Float() (v float64, ok bool) {
	if !e.Defined() {
		return 0, false
	}
	return float64(e.Success) / float64(e.Attempts), true
}

// Percent formats the ratio as "37.5%", or "-" when undefined.
func (e Efficiency) Percent() string {
	v, ok := e.Float()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// MarshalJSON encodes the ratio as a number, or null when undefined.
func (e Efficiency) MarshalJSON() ([]byte, error) {
	v, ok := e.Float()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}
