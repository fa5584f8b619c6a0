package inngest

import (
	"github.com/inngest/inngestgo"
)

// EventExpireStale asks the club workflow to expire overdue invitations and challenges.
const EventExpireStale = "club/expire-stale"

type client struct {
	inngestClient inngestgo.Client
	invitations   Expirer
	challenges    Expirer
}

// ExpireResult is the output of one expiry run.
type ExpireResult struct {
	Invitations int `json:"invitations"`
	Challenges  int `json:"challenges"`
}
