package models

import "time"

// Message is a directed message between two users.
type Message struct {
	ID           int        `db:"id" json:"id"`
	FromUsername string     `db:"from_username" json:"from_username"`
	ToUsername   string     `db:"to_username" json:"to_username"`
	Body         string     `db:"body" json:"body"`
	SentAt       time.Time  `db:"sent_at" json:"sent_at"`
	ReadAt       *time.Time `db:"read_at" json:"read_at,omitempty"`
}

// NewMessage is the input to message creation.
type NewMessage struct {
	FromUsername string
	ToUsername   string
	Body         string
}

// MessageDetail is a message with both parties' display attributes.
type MessageDetail struct {
	ID       int         `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserSummary `json:"from_user"`
	ToUser   UserSummary `json:"to_user"`
}

// SentMessage is an entry in a user's outbox.
type SentMessage struct {
	ID     int         `json:"id"`
	ToUser UserSummary `json:"to_user"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
}

// ReceivedMessage is an entry in a user's inbox.
type ReceivedMessage struct {
	ID       int         `json:"id"`
	FromUser UserSummary `json:"from_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}

// ReadReceipt is returned after marking a message read.
type ReadReceipt struct {
	ID     int       `db:"id" json:"id"`
	ReadAt time.Time `db:"read_at" json:"read_at"`
}
