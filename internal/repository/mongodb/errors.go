package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError checks if error is a unique index violation
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNoDocumentsError checks if a single-document lookup found nothing
func IsNoDocumentsError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
