package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	msg, err := ParseLine([]byte(`{"hardwareidentifier":"D1","moisture_raw":42}`))
	require.NoError(t, err)
	assert.Equal(t, "D1", msg.HardwareIdentifier)
	require.NotNil(t, msg.MoistureRaw)
	assert.Equal(t, 42.0, *msg.MoistureRaw)

	_, err = ParseLine([]byte(`{not json`))
	assert.Error(t, err)
}

func TestMessageKind(t *testing.T) {
	raw := 42.0
	tests := []struct {
		name string
		msg  Message
		want MessageKind
	}{
		{"error", Message{HardwareIdentifier: "D1", Error: "sensor fault"}, KindError},
		{"status", Message{HardwareIdentifier: "D1", Text: "booted"}, KindStatus},
		{"reading", Message{HardwareIdentifier: "D1", MoistureRaw: &raw}, KindReading},
		{"reading of zero", Message{HardwareIdentifier: "D1", MoistureRaw: new(float64)}, KindReading},
		{"nothing populated", Message{HardwareIdentifier: "D1"}, KindUnknown},
		{"status field alone does not classify", Message{HardwareIdentifier: "D1", Status: "ok"}, KindUnknown},
		{"error wins over message", Message{Error: "fault", Text: "booted"}, KindError},
		{"message wins over reading", Message{Text: "booted", MoistureRaw: &raw}, KindStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.Kind())
		})
	}
}
