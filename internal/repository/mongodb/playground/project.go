package playground

import (
	"context"
	"fmt"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/repository/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProjectRepository implements the ProjectRepository interface
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *mongo.Database) playgroundRepo.ProjectRepository {
	return &MongoProjectRepository{
		collection: db.Collection(mongodb.ProjectsCollection),
	}
}

// Create creates a new project
func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if _, err := r.collection.InsertOne(ctx, toProjectDocument(project)); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project slug %q already exists", project.Slug),
				ResourceType: "project",
			}
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID
func (r *MongoProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var doc projectDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if mongodb.IsNoDocumentsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return doc.toModel(), nil
}

// SlugExists reports whether a project already uses slug
func (r *MongoProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"projectSlug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// ListByOwner retrieves all projects owned by userID, ordered by updatedAt DESC
func (r *MongoProjectRepository) ListByOwner(ctx context.Context, userID string) ([]models.Project, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "updatedAt", Value: -1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]models.Project, 0, len(docs))
	for i := range docs {
		projects = append(projects, *docs[i].toModel())
	}
	return projects, nil
}

// Update updates a project
func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	update := bson.M{
		"$set": bson.M{
			"name":               project.Name,
			"description":        project.Description,
			"settings.framework": project.Settings.Framework,
			"settings.autoSave":  project.Settings.AutoSave,
			"updatedAt":          project.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": project.ID}, update)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a project
func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
