package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeaker_String(t *testing.T) {
	tests := []struct {
		speaker Speaker
		want    string
	}{
		{SpeakerUser, "You"},
		{SpeakerAssistant, "Assistant"},
		{SpeakerSystem, "Notice"},
		{Speaker(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.speaker.String())
		})
	}
}
