package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published after a successful mutation.
const (
	SubjectPostCreated     = "post.created"
	SubjectPostDeleted     = "post.deleted"
	SubjectPostLiked       = "post.liked"
	SubjectPostUnliked     = "post.unliked"
	SubjectPostCommented   = "post.commented"
	SubjectPostUncommented = "post.uncommented"
	SubjectAccountDeleted  = "account.deleted"
)

// Event is the payload of every published message.
type Event struct {
	Subject   string `json:"-"`
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

func NewEvent(subject, userID string) Event {
	return Event{
		Subject:   subject,
		UserID:    userID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Publisher interface {
	Publish(event Event) error
}

type natsPublisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("devconnector-backend"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return conn, nil
}

func NewNATSPublisher(conn *nats.Conn) Publisher {
	return &natsPublisher{conn: conn}
}

func (p *natsPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(event.Subject, data)
}

// Noop discards events when NATS is not configured.
type Noop struct{}

func (Noop) Publish(Event) error { return nil }
