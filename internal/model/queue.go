package model

// QueueStatus is the transient waiting-line snapshot from GET /queue/rank.
// Rank is nil while the upstream has not assigned a position yet.
type QueueStatus struct {
	Rank   *int64 `json:"rank"`
	Active bool   `json:"active"`
}
