package message

import "time"

type Platform string

const (
	PlatformSlack    Platform = "slack"
	PlatformTeams    Platform = "teams"
	PlatformWhatsApp Platform = "whatsapp"
)

// Message is an inbound chat message attributed to an internal user. Mapping
// external platform sender IDs to users happens upstream, before ingestion.
type Message struct {
	ID         string
	UserID     string
	Platform   Platform
	ExternalID string
	ChannelID  string
	SenderName string
	Content    string
	ReceivedAt time.Time
	CreatedAt  time.Time
}

// MessageResponse records when the user answered a message. At most one
// response exists per (message, user); re-recording updates it in place.
type MessageResponse struct {
	ID                  string
	MessageID           string
	UserID              string
	RespondedAt         time.Time
	ResponseTimeSeconds int
	CreatedAt           time.Time
}
