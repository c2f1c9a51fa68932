package queue

const (
	TypeInteractionRecord = "interaction:record"
)
