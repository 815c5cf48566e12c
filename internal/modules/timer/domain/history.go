package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HistoryKey is the storage key holding the serialized history array.
const HistoryKey = "taskHistory"

// Prepend returns a new history with task in front. Existing entries are never
// edited or reordered.
func Prepend(history []Task, task Task) []Task {
	out := make([]Task, 0, len(history)+1)
	out = append(out, task)
	return append(out, history...)
}

func EncodeHistory(history []Task) ([]byte, error) {
	if history == nil {
		history = []Task{}
	}
	payload, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return payload, nil
}

// DecodeHistory parses a stored history array. A JSON null decodes to an empty
// history; anything that is not an array of task records is an error.
func DecodeHistory(payload []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Task{}, nil
	}
	var history []Task
	if err := json.Unmarshal(trimmed, &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	for i := range history {
		if history[i].Sessions == nil {
			history[i].Sessions = []Session{}
		}
	}
	return history, nil
}
