package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/stats"
)

var segmentColors = map[stats.CategoryID]string{
	stats.CategoryServeSuccess: "lightblue",
	stats.CategorySpikeSuccess: "deepskyblue",
	stats.CategoryBlockSuccess: "blue",
	stats.CategoryServeMiss:    "lightcoral",
	stats.CategorySpikeMiss:    "red",
	stats.CategoryReceiveMiss:  "darkred",
}

const pageStyle = `body{font-family:sans-serif;margin:2em;color:#222}
table{border-collapse:collapse;margin-bottom:1.5em}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
tr.totals{font-weight:bold;background:#f4f4f4}
.chart{margin-bottom:2em}
.bar-row{display:flex;align-items:center;margin:2px 0}
.bar-label{width:8em}
.bar{display:flex;height:1.2em;background:#eee;width:30em}
.segment{height:100%}
.legend span{display:inline-block;margin-right:1em}
.swatch{display:inline-block;width:.8em;height:.8em;margin-right:.3em}
td.undefined{color:#999}`

// pageStyles writes the fixed stylesheet. The CSS is a trusted constant.
func pageStyles() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<style>"+pageStyle+"</style>")
		return err
	})
}

func infoRows(info match.MatchInfo, key match.Key) [][2]string {
	date := info.Date.String()
	if date == "" {
		date = match.UnsetDateLabel
	}
	return [][2]string{
		{"日付", date},
		{"場所", info.Location},
		{"対戦相手", info.Opponent},
		{"スコア", info.FinalScore},
		{"キー", key.String()},
	}
}

func rateClass(e stats.Efficiency) string {
	if e.Defined() {
		return ""
	}
	return "undefined"
}

// visibleSegments drops zero-count segments, which would render as empty slivers.
func visibleSegments(bar stats.StackedBar) []stats.BreakdownEntry {
	out := make([]stats.BreakdownEntry, 0, len(bar.Segments))
	for _, seg := range bar.Segments {
		if seg.Count > 0 {
			out = append(out, seg)
		}
	}
	return out
}

func segmentStyle(seg stats.BreakdownEntry, maxTotal int) string {
	return fmt.Sprintf("width:%.2f%%;background:%s", stats.Share(seg.Count, maxTotal)*100, segmentColors[seg.Category])
}

func swatchStyle(id stats.CategoryID) string {
	return "background:" + segmentColors[id]
}
