package sse

import (
	"encoding/json"
	"time"

	"github.com/kbukum/reactive/cell"
	"github.com/kbukum/reactive/logger"
)

// BindCell attaches a cell to a topic so every value it settles on is
// broadcast to that topic's clients as a JSON ValueEvent. The returned
// function detaches the binding.
//
// Pipeline outputs satisfy cell.Source, so a debounced or throttled
// cell can be bound the same way as a plain one.
func BindCell[T any](b Broadcaster, topic string, src cell.Source[T]) (cell.Unsubscribe, error) {
	unsub, err := src.Subscribe(func(v T) {
		data, err := json.Marshal(ValueEvent{
			Topic:     topic,
			Value:     v,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			logger.Error("failed to encode value event", logger.Fields(
				logger.FieldTopic, topic,
				logger.FieldError, err.Error(),
			))
			return
		}
		b.Broadcast(topic, data)
	})
	if err != nil {
		return nil, err
	}
	return unsub, nil
}
