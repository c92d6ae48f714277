package api

// WebSocket event types
const (
	EventCandidateCreated = "candidate.created"
	EventCandidateUpdated = "candidate.updated"
	EventCandidateDeleted = "candidate.deleted"
	EventSyncProgress     = "sync.progress"
	EventImportProgress   = "import.progress"
)

// WSEvent represents a structured WebSocket message
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CandidatePayload identifies the candidate an event refers to.
type CandidatePayload struct {
	CandidateID string `json:"candidate_id"`
}

// SyncProgressPayload reports bulk sync advancement.
type SyncProgressPayload struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// ImportProgressPayload reports CV import advancement.
type ImportProgressPayload struct {
	Filename string `json:"filename"`
	Percent  int    `json:"percent"`
}

// CandidateEvent builds a candidate lifecycle message.
func CandidateEvent(eventType, candidateID string) WSEvent {
	return WSEvent{Type: eventType, Payload: CandidatePayload{CandidateID: candidateID}}
}

// SyncProgressEvent builds a bulk sync progress message.
func SyncProgressEvent(done, total int) WSEvent {
	return WSEvent{Type: EventSyncProgress, Payload: SyncProgressPayload{Done: done, Total: total}}
}
