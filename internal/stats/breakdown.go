package stats

import "github.com/AkatukiSora/volley-stats/internal/match"

// CategoryID names one slice of a breakdown chart.
type CategoryID string

const (
	CategoryServeSuccess CategoryID = "serve_success"
	CategorySpikeSuccess CategoryID = "spike_success"
	CategoryBlockSuccess CategoryID = "block_success"
	CategoryServeMiss    CategoryID = "serve_miss"
	CategorySpikeMiss    CategoryID = "spike_miss"
	CategoryReceiveMiss  CategoryID = "receive_miss"
)

// Category maps a breakdown slice to the counter it reads.
type Category struct {
	ID      CategoryID
	Label   string
	Counter match.CounterID
}

// CategorySet is an ordered list of categories rendered as one chart.
type CategorySet struct {
	ID         string
	Label      string
	Categories []Category
}

// ScoreCategories are the ways a player wins a point.
var ScoreCategories = CategorySet{
	ID:    "score",
	Label: "選手別得点構成",
	Categories: []Category{
		{ID: CategoryServeSuccess, Label: "サーブ決定数", Counter: match.CounterServeSuccess},
		{ID: CategorySpikeSuccess, Label: "スパイク決定数", Counter: match.CounterSpikeSuccess},
		{ID: CategoryBlockSuccess, Label: "ブロック決定数", Counter: match.CounterBlockSuccess},
	},
}

// ErrorCategories are the ways a player gives a point away.
var ErrorCategories = CategorySet{
	ID:    "error",
	Label: "選手別失点構成",
	Categories: []Category{
		{ID: CategoryServeMiss, Label: "サーブミス数", Counter: match.CounterServeMiss},
		{ID: CategorySpikeMiss, Label: "スパイクミス数", Counter: match.CounterSpikeMiss},
		{ID: CategoryReceiveMiss, Label: "サーブカットミス", Counter: match.CounterReceiveMiss},
	},
}

// BreakdownEntry is one (player, category, count) tuple.
type BreakdownEntry struct {
	Player   string     `json:"player"`
	Category CategoryID `json:"category"`
	Label    string     `json:"label"`
	Count    int        `json:"count"`
}

// Breakdown flattens records into one entry per player per category, in
// player order and then category order. It is the input of player → category charts.
func Breakdown(records []match.StatRecord, set CategorySet) []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(records)*len(set.Categories))
	for _, r := range records {
		for _, c := range set.Categories {
			out = append(out, BreakdownEntry{
				Player:   r.Name,
				Category: c.ID,
				Label:    c.Label,
				Count:    r.Counter(c.Counter),
			})
		}
	}
	return out
}

func ScoreBreakdown(records []match.StatRecord) []BreakdownEntry {
	return Breakdown(records, ScoreCategories)
}

func ErrorBreakdown(records []match.StatRecord) []BreakdownEntry {
	return Breakdown(records, ErrorCategories)
}

// GroupByPlayer regroups breakdown entries into per-player slices, keeping first-seen player order.
// Players sharing a name are merged, as a player → category chart would.
func GroupByPlayer(entries []BreakdownEntry) (players []string, byPlayer map[string][]BreakdownEntry) {
	byPlayer = make(map[string][]BreakdownEntry)
	for _, e := range entries {
		if _, ok := byPlayer[e.Player]; !ok {
			players = append(players, e.Player)
		}
		byPlayer[e.Player] = append(byPlayer[e.Player], e)
	}
	return players, byPlayer
}
