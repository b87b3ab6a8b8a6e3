package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/layer-3/rangda/ports"
)

const (
	SignInTopic  = "rangda.signin"
	SignOutTopic = "rangda.signout"
)

// SignInEvent is published whenever a wallet identity is exchanged for a
// session.
type SignInEvent struct {
	UserID  string `json:"user_id"`
	Address string `json:"address"`
}

// SignOutEvent is published whenever a session token lineage is revoked.
type SignOutEvent struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id"`
}

// WatermillPublisher implements the EventPublisher port over a Watermill
// publisher.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher wraps a Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishSignIn publishes a sign-in event.
func (p *WatermillPublisher) PublishSignIn(ctx context.Context, userID, address string) error {
	return p.publish(SignInTopic, userID, SignInEvent{UserID: userID, Address: address})
}

// PublishSignOut publishes a sign-out event.
func (p *WatermillPublisher) PublishSignOut(ctx context.Context, userID, tokenID string) error {
	return p.publish(SignOutTopic, tokenID, SignOutEvent{UserID: userID, TokenID: tokenID})
}

func (p *WatermillPublisher) publish(topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(key, payload)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
