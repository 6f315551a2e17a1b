package match

// CounterID names one StatRecord counter. The value doubles as the JSON field name.
type CounterID string

const (
	CounterServeAttempts  CounterID = "serveAttempts"
	CounterServeSuccess   CounterID = "serveSuccess"
	CounterServeEffective CounterID = "serveEffective"
	CounterServeMiss      CounterID = "serveMiss"
	CounterReceiveA       CounterID = "receiveA"
	CounterReceiveB       CounterID = "receiveB"
	CounterReceiveC       CounterID = "receiveC"
	CounterReceiveMiss    CounterID = "receiveMiss"
	CounterSpikeAttempts  CounterID = "spikeAttempts"
	CounterSpikeSuccess   CounterID = "spikeSuccess"
	CounterSpikeBlocked   CounterID = "spikeBlocked"
	CounterSpikeMiss      CounterID = "spikeMiss"
	CounterBlockSuccess   CounterID = "blockSuccess"
)

// CounterGroup is the skill a counter belongs to.
type CounterGroup int

const (
	GroupServe CounterGroup = iota
	GroupReceive
	GroupSpike
	GroupBlock
)

func (g CounterGroup) String() string {
	switch g {
	case GroupServe:
		return "serve"
	case GroupReceive:
		return "receive"
	case GroupSpike:
		return "spike"
	case GroupBlock:
		return "block"
	default:
		return "unknown"
	}
}

// CounterDef describes one counter column.
// Label is the sheet header used by score sheets and the original entry form.
type CounterDef struct {
	ID    CounterID
	Group CounterGroup
	Label string
}

// NameLabel is the sheet header of the player name column.
const NameLabel = "名前"

// Counters lists every counter in display order.
var Counters = []CounterDef{
	{ID: CounterServeAttempts, Group: GroupServe, Label: "サーブ打数"},
	{ID: CounterServeSuccess, Group: GroupServe, Label: "サーブ決定数"},
	{ID: CounterServeEffective, Group: GroupServe, Label: "サーブ効果数"},
	{ID: CounterServeMiss, Group: GroupServe, Label: "サーブミス数"},
	{ID: CounterReceiveA, Group: GroupReceive, Label: "サーブカットA数"},
	{ID: CounterReceiveB, Group: GroupReceive, Label: "サーブカットB数"},
	{ID: CounterReceiveC, Group: GroupReceive, Label: "サーブカットC数"},
	{ID: CounterReceiveMiss, Group: GroupReceive, Label: "サーブカットミス"},
	{ID: CounterSpikeAttempts, Group: GroupSpike, Label: "スパイク打数"},
	{ID: CounterSpikeSuccess, Group: GroupSpike, Label: "スパイク決定数"},
	{ID: CounterSpikeBlocked, Group: GroupSpike, Label: "スパイク被ブロック数"},
	{ID: CounterSpikeMiss, Group: GroupSpike, Label: "スパイクミス数"},
	{ID: CounterBlockSuccess, Group: GroupBlock, Label: "ブロック決定数"},
}

var countersByID = func() map[CounterID]CounterDef {
	m := make(map[CounterID]CounterDef, len(Counters))
	for _, c := range Counters {
		m[c.ID] = c
	}
	return m
}()

// LookupCounter returns the definition for id.
func LookupCounter(id CounterID) (CounterDef, bool) {
	c, ok := countersByID[id]
	return c, ok
}
