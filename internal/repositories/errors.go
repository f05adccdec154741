package repositories

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidReference  = errors.New("referenced user does not exist")
	ErrInvalidText       = errors.New("text not storable")
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	// NUL bytes and characters outside the server encoding.
	pqCharacterNotInRepertoire pq.ErrorCode = "22021"
	pqUntranslatableCharacter  pq.ErrorCode = "22P05"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isInvalidText(err error) bool {
	code := pqCode(err)
	return code == pqCharacterNotInRepertoire || code == pqUntranslatableCharacter
}
