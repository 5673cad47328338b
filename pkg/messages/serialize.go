package messages

import (
	"encoding/json"
	"fmt"
)

// SerializeCommand encodes an outbound command as a JSON text frame.
func SerializeCommand(cmd *Command) ([]byte, error) {
	b, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize command: %v", err)
	}
	return b, nil
}

// DeserializeServerMessage decodes an inbound frame. Unknown `type`
// values decode fine; classification is the caller's job.
func DeserializeServerMessage(data []byte) (*ServerMessage, error) {
	msg := &ServerMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to deserialize server message: %v", err)
	}
	return msg, nil
}
