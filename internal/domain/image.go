package domain

import "time"

// Generation is one ledger row describing how a generation request ended.
// Image bytes are never part of it.
type Generation struct {
	ID             string
	Prompt         string
	Outcome        string
	UpstreamStatus int
	CreatedAt      time.Time
}

// OutcomeSuccess is recorded when the upstream returned a usable image.
const OutcomeSuccess = "success"
