package models

import (
	"encoding/json"
	"net/http"
)

const MessageType = "message"

// IncomingRequest is one webhook invocation as received from the host
type IncomingRequest struct {
	Headers http.Header
	RawBody []byte
}

// ParsedMessage is the decoded webhook body
type ParsedMessage struct {
	Text string          // The command line, e.g. "@bot exchange eurusd"
	Body map[string]any  // Full decoded body
	Raw  json.RawMessage // Compacted body with keys in the order the client sent them
}

// ParsedCommand is the command name and arguments extracted from a message text
type ParsedCommand struct {
	Name string
	Args []string
}

// CommandInput is everything a command sees when it runs
type CommandInput struct {
	Message  ParsedMessage
	Args     []string
	Commands []string // Registered command names in declared order
}

// Attachment is a media item attached to a chat response
type Attachment struct {
	ContentType string `json:"contentType"`
	ContentURL  string `json:"contentUrl"`
}

// ResponsePayload is the chat message returned to the platform
type ResponsePayload struct {
	Type        string       `json:"type"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// HTTPResponse is the terminal artifact of one request cycle
type HTTPResponse struct {
	StatusCode int
	Body       string
}

// NewTextPayload builds a plain text message payload
func NewTextPayload(text string) *ResponsePayload {
	return &ResponsePayload{
		Type: MessageType,
		Text: text,
	}
}
