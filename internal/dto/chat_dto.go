package dto

import "html/template"

// ChatRequest is the message form posted from the chat panel.
type ChatRequest struct {
	Message string `form:"message" json:"message" validate:"required,max=2000"`
}

// ChatEntry is a transcript entry prepared for rendering.
type ChatEntry struct {
	ID     string        `json:"id"`
	Sender string        `json:"sender"`
	HTML   template.HTML `json:"html"`
	Typing bool          `json:"typing"`
}
