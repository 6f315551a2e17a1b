// Package match defines the per-player stat schema and the match record that
// the store persists and the stats package reads.
package match

import "strings"

// StatRecord holds one player's counters for one match.
// Name is the row identifier and is not guaranteed to be unique.
type StatRecord struct {
	Name string `json:"name"`

	// Serve
	ServeAttempts  int `json:"serveAttempts"`
	ServeSuccess   int `json:"serveSuccess"`
	ServeEffective int `json:"serveEffective"`
	ServeMiss      int `json:"serveMiss"`

	// Serve receive, graded A (best) to C
	ReceiveA    int `json:"receiveA"`
	ReceiveB    int `json:"receiveB"`
	ReceiveC    int `json:"receiveC"`
	ReceiveMiss int `json:"receiveMiss"`

	// Spike
	SpikeAttempts int `json:"spikeAttempts"`
	SpikeSuccess  int `json:"spikeSuccess"`
	SpikeBlocked  int `json:"spikeBlocked"`
	SpikeMiss     int `json:"spikeMiss"`

	BlockSuccess int `json:"blockSuccess"`
}

// IsComplete reports whether the record carries a player name.
func (r StatRecord) IsComplete() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Counter returns the value of the counter identified by id, or 0 for an unknown id.
func (r StatRecord) Counter(id CounterID) int {
	if p := r.counterPtr(id); p != nil {
		return *p
	}
	return 0
}

// SetCounter assigns a counter value. It reports false for an unknown id.
func (r *StatRecord) SetCounter(id CounterID, v int) bool {
	p := r.counterPtr(id)
	if p == nil {
		return false
	}
	*p = v
	return true
}

func (r *StatRecord) counterPtr(id CounterID) *int {
	switch id {
	case CounterServeAttempts:
		return &r.ServeAttempts
	case CounterServeSuccess:
		return &r.ServeSuccess
	case CounterServeEffective:
		return &r.ServeEffective
	case CounterServeMiss:
		return &r.ServeMiss
	case CounterReceiveA:
		return &r.ReceiveA
	case CounterReceiveB:
		return &r.ReceiveB
	case CounterReceiveC:
		return &r.ReceiveC
	case CounterReceiveMiss:
		return &r.ReceiveMiss
	case CounterSpikeAttempts:
		return &r.SpikeAttempts
	case CounterSpikeSuccess:
		return &r.SpikeSuccess
	case CounterSpikeBlocked:
		return &r.SpikeBlocked
	case CounterSpikeMiss:
		return &r.SpikeMiss
	case CounterBlockSuccess:
		return &r.BlockSuccess
	default:
		return nil
	}
}

// MatchInfo is the match metadata. FinalScore is free text such as "2-1" or "25-20, 18-25, 25-22".
type MatchInfo struct {
	Date       Date   `json:"date"`
	Location   string `json:"location"`
	Opponent   string `json:"opponent"`
	FinalScore string `json:"score"`
}

// MatchRecord is a match's metadata plus every player's counters, in entry order.
type MatchRecord struct {
	Info    MatchInfo    `json:"matchInfo"`
	Records []StatRecord `json:"statRecords"`
}

// Key returns the storage key derived from the match metadata.
func (m MatchRecord) Key() Key {
	return KeyOf(m.Info)
}

// Clone returns a deep copy of m.
func (m MatchRecord) Clone() MatchRecord {
	out := m
	if m.Records != nil {
		out.Records = append([]StatRecord(nil), m.Records...)
	}
	return out
}

// Equal reports whether both records hold the same metadata and the same
// stat rows in the same order. A nil and an empty row slice are equal.
func (m MatchRecord) Equal(other MatchRecord) bool {
	if m.Info != other.Info {
		return false
	}
	if len(m.Records) != len(other.Records) {
		return false
	}
	for i := range m.Records {
		if m.Records[i] != other.Records[i] {
			return false
		}
	}
	return true
}
