package entity

import "time"

const (
	CallKindVoice = "voice"
	CallKindVideo = "video"

	CallStatusRinging   = "ringing"
	CallStatusCompleted = "completed"
	CallStatusMissed    = "missed"
	CallStatusDeclined  = "declined"
)

// Call is a call-log entry. Participants mirrors the caller/callee pair so
// the log can be queried with a single array-contains filter.
type Call struct {
	ID           string    `json:"id" firestore:"id"`
	CallerID     string    `json:"caller_id" firestore:"callerId"`
	CallerName   string    `json:"caller_name" firestore:"callerName"`
	CalleeID     string    `json:"callee_id" firestore:"calleeId"`
	CalleeName   string    `json:"callee_name" firestore:"calleeName"`
	Participants []string  `json:"participants" firestore:"participants"`
	Kind         string    `json:"kind" firestore:"kind"`
	Status       string    `json:"status" firestore:"status"`
	StartedAt    time.Time `json:"started_at" firestore:"startedAt"`
	EndedAt      time.Time `json:"ended_at,omitempty" firestore:"endedAt,omitempty"`
}
