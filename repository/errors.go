package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/utils"
)

// isUniqueViolation recognises unique-constraint failures from GORM's error
// translation, Postgres (23505) and SQLite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFound maps gorm.ErrRecordNotFound to utils.ErrNotFound.
func notFound(err error, kind string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFoundError(kind, id)
	}
	return err
}

// ErrForeignQuestion is returned by Reorder when the order lists a question of
// another survey, or lists one twice.
var ErrForeignQuestion = errors.New("order contains questions that do not belong to the survey")

// ErrIncompleteOrder is returned by Reorder when the order leaves out some of
// the survey's questions.
var ErrIncompleteOrder = errors.New("order must list every question of the survey")
