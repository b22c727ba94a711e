package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quillpress/blog-api/internal/core/domain"
)

const (
	duplicateKeyCode = 11000

	indexUniqueEmail    = "uniq_email"
	indexUniqueUsername = "uniq_username"
)

// duplicateError maps a unique index violation on the users collection to
// the matching domain error. ok is false for any other error.
func duplicateError(err error) (dup error, ok bool) {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return nil, false
	}
	switch {
	case se.HasErrorCodeWithMessage(duplicateKeyCode, indexUniqueEmail):
		return domain.ErrDuplicateEmail, true
	case se.HasErrorCodeWithMessage(duplicateKeyCode, indexUniqueUsername):
		return domain.ErrDuplicateUsername, true
	default:
		return nil, false
	}
}

// objectID parses a hex id. ok is false for ids this store could never have issued.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
