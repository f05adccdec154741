package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"messagely/internal/models"
)

// MessageRepository defines interactions for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg models.NewMessage) (models.Message, error)
	Get(ctx context.Context, id int) (models.MessageDetail, error)
	Recipient(ctx context.Context, id int) (string, error)
	MarkRead(ctx context.Context, id int) (models.ReadReceipt, error)
	ListFrom(ctx context.Context, username string) ([]models.SentMessage, error)
	ListTo(ctx context.Context, username string) ([]models.ReceivedMessage, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a message; sent_at defaults to now and read_at stays NULL.
func (r *MessageRepo) Create(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	var created models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (from_username, to_username, body)
        VALUES ($1, $2, $3)
        RETURNING id, from_username, to_username, body, sent_at`,
		msg.FromUsername, msg.ToUsername, msg.Body).StructScan(&created)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return models.Message{}, ErrInvalidReference
		}
		if isInvalidText(err) {
			return models.Message{}, ErrInvalidText
		}
		return models.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return created, nil
}

type messageDetailRow struct {
	ID            int        `db:"id"`
	Body          string     `db:"body"`
	SentAt        time.Time  `db:"sent_at"`
	ReadAt        *time.Time `db:"read_at"`
	FromUsername  string     `db:"from_username"`
	FromFirstName string     `db:"from_first_name"`
	FromLastName  string     `db:"from_last_name"`
	FromPhone     string     `db:"from_phone"`
	ToUsername    string     `db:"to_username"`
	ToFirstName   string     `db:"to_first_name"`
	ToLastName    string     `db:"to_last_name"`
	ToPhone       string     `db:"to_phone"`
}

// Get retrieves a message with sender and recipient display attributes.
func (r *MessageRepo) Get(ctx context.Context, id int) (models.MessageDetail, error) {
	var row messageDetailRow
	err := r.db.GetContext(ctx, &row, `SELECT m.id, m.body, m.sent_at, m.read_at,
            f.username AS from_username, f.first_name AS from_first_name, f.last_name AS from_last_name, f.phone AS from_phone,
            t.username AS to_username, t.first_name AS to_first_name, t.last_name AS to_last_name, t.phone AS to_phone
        FROM messages m
        JOIN users f ON f.username = m.from_username
        JOIN users t ON t.username = m.to_username
        WHERE m.id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MessageDetail{}, ErrMessageNotFound
	}
	if err != nil {
		return models.MessageDetail{}, err
	}

	return models.MessageDetail{
		ID:     row.ID,
		Body:   row.Body,
		SentAt: row.SentAt,
		ReadAt: row.ReadAt,
		FromUser: models.UserSummary{
			Username:  row.FromUsername,
			FirstName: row.FromFirstName,
			LastName:  row.FromLastName,
			Phone:     row.FromPhone,
		},
		ToUser: models.UserSummary{
			Username:  row.ToUsername,
			FirstName: row.ToFirstName,
			LastName:  row.ToLastName,
			Phone:     row.ToPhone,
		},
	}, nil
}

// Recipient returns the to_username of a message.
func (r *MessageRepo) Recipient(ctx context.Context, id int) (string, error) {
	var to string
	err := r.db.GetContext(ctx, &to, `SELECT to_username FROM messages WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMessageNotFound
	}
	return to, err
}

// MarkRead sets read_at to now. Marking twice refreshes the timestamp.
func (r *MessageRepo) MarkRead(ctx context.Context, id int) (models.ReadReceipt, error) {
	var receipt models.ReadReceipt
	err := r.db.GetContext(ctx, &receipt, `UPDATE messages SET read_at = NOW() WHERE id=$1 RETURNING id, read_at`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadReceipt{}, ErrMessageNotFound
	}
	return receipt, err
}

type counterpartRow struct {
	ID     int        `db:"id"`
	Body   string     `db:"body"`
	SentAt time.Time  `db:"sent_at"`
	ReadAt *time.Time `db:"read_at"`
	models.UserSummary
}

// listWithCounterpart selects messages filtered on filterColumn joined with the
// user found in joinColumn.
func (r *MessageRepo) listWithCounterpart(ctx context.Context, joinColumn, filterColumn, username string) ([]counterpartRow, error) {
	query, args, err := psql.
		Select("m.id", "m.body", "m.sent_at", "m.read_at", "u.username", "u.first_name", "u.last_name", "u.phone").
		From("messages m").
		Join("users u ON u.username = m." + joinColumn).
		Where(sq.Eq{"m." + filterColumn: username}).
		OrderBy("m.sent_at", "m.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []counterpartRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFrom returns messages sent by username, each with its recipient. Never nil.
func (r *MessageRepo) ListFrom(ctx context.Context, username string) ([]models.SentMessage, error) {
	rows, err := r.listWithCounterpart(ctx, "to_username", "from_username", username)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.SentMessage, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, models.SentMessage{ID: row.ID, ToUser: row.UserSummary, Body: row.Body, SentAt: row.SentAt, ReadAt: row.ReadAt})
	}
	return msgs, nil
}

// ListTo returns messages received by username, each with its sender. Never nil.
func (r *MessageRepo) ListTo(ctx context.Context, username string) ([]models.ReceivedMessage, error) {
	rows, err := r.listWithCounterpart(ctx, "from_username", "to_username", username)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.ReceivedMessage, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, models.ReceivedMessage{ID: row.ID, FromUser: row.UserSummary, Body: row.Body, SentAt: row.SentAt, ReadAt: row.ReadAt})
	}
	return msgs, nil
}
