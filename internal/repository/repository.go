package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrVersionConflict means a compare-and-swap save lost against a
// concurrent writer of the same document.
var ErrVersionConflict = errors.New("document version conflict")

// IsNotFound reports whether err means no document matched.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
