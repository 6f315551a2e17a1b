package stats

// StackedBar is one player's bar in a stacked breakdown chart.
type StackedBar struct {
	Player   string
	Total    int
	Segments []BreakdownEntry
}

// StackedBars folds breakdown entries into one bar per player name, summing
// repeated categories, and returns the largest bar total for scaling.
func StackedBars(entries []BreakdownEntry) (bars []StackedBar, maxTotal int) {
	players, byPlayer := GroupByPlayer(entries)
	bars = make([]StackedBar, 0, len(players))
	for _, p := range players {
		bar := StackedBar{Player: p}
		index := make(map[CategoryID]int)
		for _, e := range byPlayer[p] {
			if i, ok := index[e.Category]; ok {
				bar.Segments[i].Count += e.Count
			} else {
				index[e.Category] = len(bar.Segments)
				bar.Segments = append(bar.Segments, e)
			}
			bar.Total += e.Count
		}
		if bar.Total > maxTotal {
			maxTotal = bar.Total
		}
		bars = append(bars, bar)
	}
	return bars, maxTotal
}

// Share returns part/whole in [0,1], or 0 when whole is not positive.
func Share(part, whole int) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 1
	}
	return float64(part) / float64(whole)
}
