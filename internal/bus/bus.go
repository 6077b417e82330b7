// Package bus fans notice payloads out to live subscribers keyed by channel.
package bus

import (
	"context"
	"errors"

	"volunteer-match/internal/domain"
)

var ErrClosed = errors.New("bus closed")

type Handler func(domain.NoticePayload)

// Bus is a publish/subscribe channel for notices. Publish reports how many
// subscribers the payload reached; zero is not an error.
type Bus interface {
	Publish(ctx context.Context, channel string, payload domain.NoticePayload) (int, error)
	Subscribe(ctx context.Context, channel string, handler Handler) (unsubscribe func(), err error)
	Close() error
}

func VolunteerChannel(volunteerID string) string {
	return "volunteer:" + volunteerID
}
