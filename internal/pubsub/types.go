package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType is both the message kind and the topic it is published to.
type EventType string

const (
	EventProvisionChannels EventType = "provision-channels"
	EventTeardownChannels  EventType = "teardown-channels"
)

// PushRequest is the envelope Pub/Sub posts to a push subscription endpoint.
type PushRequest struct {
	Message struct {
		Data        []byte            `json:"data"`
		ID          string            `json:"messageId"`
		Attributes  map[string]string `json:"attributes"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
