// Package messages defines Bubbletea message types for the chat TUI.
package messages

import (
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// ChatCompleted carries the assistant's reply back to the model.
type ChatCompleted struct {
	Reply *domain.ChatReply
	Err   error
}

// DocumentsLoaded reports which documents are available at startup.
type DocumentsLoaded struct {
	Documents []domain.DocumentSummary
	Err       error
}

// Speaker identifies who wrote a transcript entry.
type Speaker int

const (
	// SpeakerUser is a message typed by the user.
	SpeakerUser Speaker = iota
	// SpeakerAssistant is a reply from the model.
	SpeakerAssistant
	// SpeakerSystem is a notice from the TUI itself.
	SpeakerSystem
)

// String returns the label shown in the transcript.
func (s Speaker) String() string {
	switch s {
	case SpeakerUser:
		return "You"
	case SpeakerAssistant:
		return "Assistant"
	case SpeakerSystem:
		return "Notice"
	default:
		return "unknown"
	}
}
