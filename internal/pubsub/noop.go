package pubsub

import "github.com/charmbracelet/log"

// noop is used when no Google Cloud project is configured. Messages are
// logged and dropped.
type noop struct{}

func NewNoop() PubSubClient {
	return noop{}
}

func (noop) SendMessage(topic EventType, data any) error {
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic)
	return nil
}

func (noop) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}
