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

// listing order: folders first, then names
var fileSort = bson.D{
	{Key: "type", Value: -1},
	{Key: "name", Value: 1},
}

// MongoFileRepository implements the FileRepository interface
type MongoFileRepository struct {
	collection *mongo.Collection
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *mongo.Database) playgroundRepo.FileRepository {
	return &MongoFileRepository{
		collection: db.Collection(mongodb.FilesCollection),
	}
}

// parentFilter matches a nullable parent; nil matches root nodes only
func parentFilter(parentID *string) interface{} {
	if parentID == nil {
		return nil
	}
	return *parentID
}

// Create creates a new node
func (r *MongoFileRepository) Create(ctx context.Context, node *models.FileNode) error {
	if _, err := r.collection.InsertOne(ctx, toFileDocument(node)); err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return r.siblingConflict(ctx, node)
		}
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

func (r *MongoFileRepository) siblingConflict(ctx context.Context, node *models.FileNode) error {
	conflict := &domain.ConflictError{
		Message:      "Name already exists in this location",
		ResourceType: string(node.Type),
	}
	if existing, err := r.FindSibling(ctx, node.ProjectID, node.ParentID, node.Name); err == nil && existing != nil {
		conflict.ResourceType = string(existing.Type)
		conflict.ResourceID = existing.ID
	}
	return conflict
}

// GetByID retrieves a node by ID
func (r *MongoFileRepository) GetByID(ctx context.Context, id string) (*models.FileNode, error) {
	var doc fileDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if mongodb.IsNoDocumentsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	node := doc.toModel()
	return &node, nil
}

// FindSibling returns the node named name under parentID, or nil
func (r *MongoFileRepository) FindSibling(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error) {
	filter := bson.M{
		"projectId": projectID,
		"parentId":  parentFilter(parentID),
		"name":      name,
	}

	var doc fileDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if mongodb.IsNoDocumentsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find sibling: %w", err)
	}
	node := doc.toModel()
	return &node, nil
}

// ListByProject lists every node in a project
func (r *MongoFileRepository) ListByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	return r.find(ctx, bson.M{"projectId": projectID})
}

// ListChildren lists the direct children of parentID
func (r *MongoFileRepository) ListChildren(ctx context.Context, projectID string, parentID *string) ([]models.FileNode, error) {
	return r.find(ctx, bson.M{
		"projectId": projectID,
		"parentId":  parentFilter(parentID),
	})
}

func (r *MongoFileRepository) find(ctx context.Context, filter bson.M) ([]models.FileNode, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(fileSort))
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []fileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}

	nodes := make([]models.FileNode, 0, len(docs))
	for i := range docs {
		nodes = append(nodes, docs[i].toModel())
	}
	return nodes, nil
}

// Update updates a node
func (r *MongoFileRepository) Update(ctx context.Context, node *models.FileNode) error {
	update := bson.M{
		"$set": bson.M{
			"parentId":    node.ParentID,
			"name":        node.Name,
			"content":     node.Content,
			"language":    node.Language,
			"sizeInBytes": node.SizeInBytes,
			"updatedAt":   node.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": node.ID}, update)
	if err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return r.siblingConflict(ctx, node)
		}
		return fmt.Errorf("update file: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("file %s: %w", node.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteMany deletes the given nodes of a project
func (r *MongoFileRepository) DeleteMany(ctx context.Context, projectID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{
		"projectId": projectID,
		"_id":       bson.M{"$in": ids},
	})
	if err != nil {
		return 0, fmt.Errorf("delete files: %w", err)
	}
	return result.DeletedCount, nil
}

// DeleteAllByProject deletes every node of a project
func (r *MongoFileRepository) DeleteAllByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, fmt.Errorf("delete project files: %w", err)
	}
	return result.DeletedCount, nil
}
