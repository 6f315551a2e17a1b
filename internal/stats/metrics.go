package stats

type MetricID string

const (
	MetricServeEfficiency MetricID = "serve_efficiency"
	MetricServeEffectRate MetricID = "serve_effect_rate"
	MetricServeMissRate   MetricID = "serve_miss_rate"
	MetricReceiveQuality  MetricID = "receive_quality"
	MetricSpikeEfficiency MetricID = "spike_efficiency"
	MetricSpikeBlocked    MetricID = "spike_blocked_rate"
)

// MetricDefinition describes one rate column. Higher is better unless LowerIsBetter.
type MetricDefinition struct {
	ID            MetricID
	Label         string
	Help          string
	LowerIsBetter bool
	value         func(PlayerSummary) Efficiency
}

// Value extracts the metric from a summary.
func (d MetricDefinition) Value(s PlayerSummary) Efficiency {
	if d.value == nil {
		return Efficiency{}
	}
	return d.value(s)
}

var metricRegistry = []MetricDefinition{
	{
		ID: MetricServeEfficiency, Label: "サーブ決定率", Help: "サーブ決定数 / サーブ打数",
		value: func(s PlayerSummary) Efficiency { return s.ServeEfficiency },
	},
	{
		ID: MetricServeEffectRate, Label: "サーブ効果率", Help: "(サーブ決定数 + サーブ効果数) / サーブ打数",
		value: func(s PlayerSummary) Efficiency { return s.ServeEffectRate },
	},
	{
		ID: MetricServeMissRate, Label: "サーブミス率", Help: "サーブミス数 / サーブ打数", LowerIsBetter: true,
		value: func(s PlayerSummary) Efficiency { return s.ServeMissRate },
	},
	{
		ID: MetricReceiveQuality, Label: "サーブカット成功率", Help: "(A + B) / (A + B + C + ミス)",
		value: func(s PlayerSummary) Efficiency { return s.ReceiveQuality },
	},
	{
		ID: MetricSpikeEfficiency, Label: "スパイク決定率", Help: "スパイク決定数 / スパイク打数",
		value: func(s PlayerSummary) Efficiency { return s.SpikeEfficiency },
	},
	{
		ID: MetricSpikeBlocked, Label: "被ブロック率", Help: "スパイク被ブロック数 / スパイク打数", LowerIsBetter: true,
		value: func(s PlayerSummary) Efficiency { return s.SpikeBlocked },
	},
}

// Metrics returns the metric registry in display order.
func Metrics() []MetricDefinition {
	return append([]MetricDefinition(nil), metricRegistry...)
}

// LookupMetric returns the definition for id.
func LookupMetric(id MetricID) (MetricDefinition, bool) {
	for _, d := range metricRegistry {
		if d.ID == id {
			return d, true
		}
	}
	return MetricDefinition{}, false
}
