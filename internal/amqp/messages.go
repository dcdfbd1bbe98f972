package amqp

import (
	"encoding/json"
	"time"
)

// CategoryAddedMessage announces a category that was persisted by the admin.
type CategoryAddedMessage struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCategoryAddedMessage(name string) *CategoryAddedMessage {
	return &CategoryAddedMessage{
		Name:      name,
		Timestamp: time.Now(),
	}
}

func (m *CategoryAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CategoryAddedMessageFromJSON(data []byte) (*CategoryAddedMessage, error) {
	var msg CategoryAddedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
