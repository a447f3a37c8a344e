package pubsub

import "context"

// PubSubClient publishes and decodes the asynchronous channel jobs.
type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
