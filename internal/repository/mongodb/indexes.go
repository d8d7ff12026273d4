package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	projectIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "projectSlug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "updatedAt", Value: -1},
			},
		},
	}
	if _, err := db.Collection(ProjectsCollection).Indexes().CreateMany(ctx, projectIndexes); err != nil {
		return fmt.Errorf("create project indexes: %w", err)
	}

	// A null parentId is indexed as a value, so root-level names are unique too
	fileIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "projectId", Value: 1},
				{Key: "parentId", Value: 1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "projectId", Value: 1},
				{Key: "type", Value: -1},
				{Key: "name", Value: 1},
			},
		},
	}
	if _, err := db.Collection(FilesCollection).Indexes().CreateMany(ctx, fileIndexes); err != nil {
		return fmt.Errorf("create file indexes: %w", err)
	}

	return nil
}
