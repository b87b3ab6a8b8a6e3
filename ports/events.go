package ports

import "context"

// EventPublisher notifies other instances about session lifecycle changes.
type EventPublisher interface {
	PublishSignIn(ctx context.Context, userID, address string) error
	PublishSignOut(ctx context.Context, userID, tokenID string) error
}
