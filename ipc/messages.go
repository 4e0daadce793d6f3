package ipc

// Message kinds. The game never names them; they are derived from the shape
// of each line by Classify.
const (
	KindConfig = "config"
	KindTurn   = "turn"
	KindAction = "action"
	KindEnd    = "end"
)

// frameKinds maps turnInfo[0] to a message kind.
var frameKinds = map[int]string{
	0: KindTurn,
	1: KindAction,
	2: KindEnd,
}
