package gemini

// FailureEvent is published on events.TopicDispatchFailed. It carries no
// secrets.
type FailureEvent struct {
	DispatchID string `json:"dispatch_id"`
	Mode       string `json:"mode"`
	Kind       string `json:"kind"`
	Reason     string `json:"reason"`
	Attempts   int    `json:"attempts"`
	Removed    int    `json:"removed"`
}
