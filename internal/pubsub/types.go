package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/padel-league/internal/league"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// Each event type is published to the topic of the same name.
type EventType string

const (
	// EventNotifyResult asks for a recorded match to be announced.
	EventNotifyResult EventType = "notify-result"
)

// MatchRecordedEvent is the payload of EventNotifyResult.
type MatchRecordedEvent struct {
	Result league.MatchResult `msgpack:"result"`
	DryRun bool               `msgpack:"dry_run"`
}
