package bridge

import "encoding/json"

// Message is one JSON line from the microcontroller. The device populates
// exactly one of error, message or moisture_raw per line, but precedence
// below decides when it doesn't.
type Message struct {
	HardwareIdentifier string   `json:"hardwareidentifier"`
	Timestamp          string   `json:"timestamp"`
	MoistureRaw        *float64 `json:"moisture_raw"`
	Status             string   `json:"status"`
	Text               string   `json:"message"`
	Error              string   `json:"error"`
}

type MessageKind int

const (
	KindUnknown MessageKind = iota
	KindError
	KindStatus
	KindReading
)

// ParseLine decodes one serial line.
func ParseLine(line []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(line, &msg)
	return msg, err
}

// Kind classifies a message: a non-empty error wins, then a non-empty
// message text, then a present moisture_raw. Anything else is unknown.
func (m Message) Kind() MessageKind {
	switch {
	case m.Error != "":
		return KindError
	case m.Text != "":
		return KindStatus
	case m.MoistureRaw != nil:
		return KindReading
	default:
		return KindUnknown
	}
}
