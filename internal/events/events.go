package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypeAnalysisCompleted = "analysis_completed"
	TypeModelReloaded     = "model_reloaded"
	TypeConfigUpdated     = "config_updated"
)

// Event is the envelope every hub message is wrapped in. Version lets
// consumers skip payload shapes they don't understand.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func (e Event) encode() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// MakeEvent builds a serialized envelope around data, which may be nil
// for payload-less events like pings.
func MakeEvent(reqID, typ string, v int, data any) string {
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
	}
	if data != nil {
		e.Data, _ = json.Marshal(data)
	}
	return e.encode()
}
