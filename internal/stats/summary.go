package stats

import "github.com/AkatukiSora/volley-stats/internal/match"

// TotalsName is the display name of the team totals row.
const TotalsName = "チーム合計"

// PlayerSummary holds the derived rates for one player.
type PlayerSummary struct {
	Name string `json:"name"`

	ServeEfficiency Efficiency `json:"serveEfficiency"`
	ServeEffectRate Efficiency `json:"serveEffectRate"`
	ServeMissRate   Efficiency `json:"serveMissRate"`
	ReceiveQuality  Efficiency `json:"receiveQuality"`
	SpikeEfficiency Efficiency `json:"spikeEfficiency"`
	SpikeBlocked    Efficiency `json:"spikeBlockedRate"`

	Points int `json:"points"`
	Errors int `json:"errors"`
}

// Summarize computes one summary per record, in record order.
func Summarize(records []match.StatRecord) []PlayerSummary {
	out := make([]PlayerSummary, 0, len(records))
	for _, r := range records {
		out = append(out, SummarizeRecord(r))
	}
	return out
}

// SummarizeRecord computes the derived rates of a single record.
func SummarizeRecord(r match.StatRecord) PlayerSummary {
	receives := r.ReceiveA + r.ReceiveB + r.ReceiveC + r.ReceiveMiss
	return PlayerSummary{
		Name:            r.Name,
		ServeEfficiency: NewEfficiency(r.ServeSuccess, r.ServeAttempts),
		ServeEffectRate: NewEfficiency(r.ServeSuccess+r.ServeEffective, r.ServeAttempts),
		ServeMissRate:   NewEfficiency(r.ServeMiss, r.ServeAttempts),
		ReceiveQuality:  NewEfficiency(r.ReceiveA+r.ReceiveB, receives),
		SpikeEfficiency: NewEfficiency(r.SpikeSuccess, r.SpikeAttempts),
		SpikeBlocked:    NewEfficiency(r.SpikeBlocked, r.SpikeAttempts),
		Points:          r.ServeSuccess + r.SpikeSuccess + r.BlockSuccess,
		Errors:          r.ServeMiss + r.SpikeMiss + r.ReceiveMiss,
	}
}

// Totals sums every counter across records into a single team row.
func Totals(records []match.StatRecord) match.StatRecord {
	total := match.StatRecord{Name: TotalsName}
	for _, r := range records {
		for _, c := range match.Counters {
			total.SetCounter(c.ID, total.Counter(c.ID)+r.Counter(c.ID))
		}
	}
	return total
}
