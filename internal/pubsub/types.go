package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/mauv0809/courtside/internal/rating"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchRecorded      EventType = "match-recorded"
	EventLeaderboardChanged EventType = "leaderboard-changed"
	EventInvitationMatched  EventType = "invitation-matched"
	EventChallengeCreated   EventType = "challenge-created"
)

// LeaderboardChanged is published after a match moved ratings in a club.
type LeaderboardChanged struct {
	ClubID    string          `msgpack:"club_id"`
	MatchID   string          `msgpack:"match_id"`
	Changes   []rating.Change `msgpack:"changes"`
	ChangedAt time.Time       `msgpack:"changed_at"`
}

// PushEnvelope is the JSON body Pub/Sub push subscriptions deliver.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		MessageID  string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}
