package match

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RawStat is one unvalidated entry row: the name and counter values as typed.
// Counters absent from the map count as zero.
type RawStat struct {
	Name     string
	Counters map[CounterID]string
}

// Pseudo field IDs for ValidationError values that are not counters.
const (
	FieldDate     CounterID = "date"
	FieldName     CounterID = "name"
	FieldLocation CounterID = "location"
	FieldOpponent CounterID = "opponent"
	FieldScore    CounterID = "score"
)

// ValidationError reports a value that cannot be stored: a counter that is not
// a number, a date that is not a calendar day, or text that is not UTF-8.
type ValidationError struct {
	Player string
	Field  CounterID
	Value  string
}

func (e *ValidationError) Error() string {
	label := string(e.Field)
	if def, ok := LookupCounter(e.Field); ok {
		label = def.Label
	}
	if e.Player != "" {
		return fmt.Sprintf("invalid value %q for %s (%s)", e.Value, label, e.Player)
	}
	return fmt.Sprintf("invalid value %q for %s", e.Value, label)
}

// Normalize converts a raw row into a StatRecord. Blank counters become 0 and
// negative counters are clamped to 0; non-numeric text is a *ValidationError.
// Invalid UTF-8 in the name is replaced with U+FFFD.
func Normalize(raw RawStat) (StatRecord, error) {
	rec := StatRecord{Name: strings.TrimSpace(strings.ToValidUTF8(raw.Name, "\uFFFD"))}
	for id, text := range raw.Counters {
		if _, ok := LookupCounter(id); !ok {
			return StatRecord{}, &ValidationError{Player: rec.Name, Field: id, Value: text}
		}
	}
	for _, c := range Counters {
		text, ok := raw.Counters[c.ID]
		if !ok {
			continue
		}
		v, err := parseCount(text)
		if err != nil {
			return StatRecord{}, &ValidationError{Player: rec.Name, Field: c.ID, Value: text}
		}
		rec.SetCounter(c.ID, v)
	}
	return rec, nil
}

// Validate reports the first value in m that a store could not read back:
// an impossible date or text that is not valid UTF-8.
func (m MatchRecord) Validate() error {
	if !m.Info.Date.Valid() {
		d := m.Info.Date
		return &ValidationError{Field: FieldDate, Value: fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)}
	}
	for _, f := range []struct {
		id   CounterID
		text string
	}{
		{FieldLocation, m.Info.Location},
		{FieldOpponent, m.Info.Opponent},
		{FieldScore, m.Info.FinalScore},
	} {
		if !utf8.ValidString(f.text) {
			return &ValidationError{Field: f.id, Value: strings.ToValidUTF8(f.text, "\uFFFD")}
		}
	}
	for _, r := range m.Records {
		if !utf8.ValidString(r.Name) {
			clean := strings.ToValidUTF8(r.Name, "\uFFFD")
			return &ValidationError{Player: clean, Field: FieldName, Value: clean}
		}
	}
	return nil
}

// NormalizeAll normalizes rows in order and stops at the first invalid row.
func NormalizeAll(rows []RawStat) ([]StatRecord, error) {
	out := make([]StatRecord, 0, len(rows))
	for _, raw := range rows {
		rec, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// RawOf renders a record back into entry form text.
func RawOf(r StatRecord) RawStat {
	raw := RawStat{Name: r.Name, Counters: make(map[CounterID]string, len(Counters))}
	for _, c := range Counters {
		raw.Counters[c.ID] = strconv.Itoa(r.Counter(c.ID))
	}
	return raw
}

// FilterIncomplete drops records without a player name, keeping the order of the rest.
func FilterIncomplete(records []StatRecord) []StatRecord {
	out := make([]StatRecord, 0, len(records))
	for _, r := range records {
		if r.IsComplete() {
			out = append(out, r)
		}
	}
	return out
}

func parseCount(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return clampCount(n), nil
	}
	// Spreadsheets hand integral cells over as "3.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", text)
	}
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("out of range: %q", text)
	}
	return clampCount(int(f)), nil
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
