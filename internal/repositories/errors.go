package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// postgres unique_violation
const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// validID reports whether id can be used against a uuid column; anything else
// cannot exist and is treated as not found instead of a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
