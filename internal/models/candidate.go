package models

import "github.com/google/uuid"

// Candidate is a task extracted by the AI parser that has not been saved.
// Key is generated on the client when the parse result arrives and identifies
// the candidate within the pending list; it is never sent to the server.
type Candidate struct {
	Key  uuid.UUID
	Task Task
}

// NewCandidates wraps parsed tasks with fresh keys. Any id or status the
// parser returned is dropped since candidates have neither until saved.
func NewCandidates(parsed []Task) []Candidate {
	candidates := make([]Candidate, 0, len(parsed))
	for _, t := range parsed {
		t.ID = ""
		t.Status = ""
		candidates = append(candidates, Candidate{Key: uuid.New(), Task: t})
	}
	return candidates
}
