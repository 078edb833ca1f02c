package models

import "time"

// Sender identifies who authored a chat entry.
type Sender string

// Chat senders.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of a session's chat transcript. Typing entries are
// placeholders shown while a reply is outstanding.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Typing    bool      `json:"typing,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
