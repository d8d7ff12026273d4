package playground

import (
	"context"
	"fmt"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fileColumns = `id, project_id, parent_id, name, type, s3_key, content, language, size_in_bytes, created_at, updated_at`

// Listing order: folders first, then byte-order names
const fileOrder = `ORDER BY type DESC, name COLLATE "C"`

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) playgroundRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new node
func (r *PostgresFileRepository) Create(ctx context.Context, node *models.FileNode) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Files, fileColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		node.ID,
		node.ProjectID,
		node.ParentID,
		node.Name,
		string(node.Type),
		node.S3Key,
		node.Content,
		node.Language,
		node.SizeInBytes,
		node.CreatedAt,
		node.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.siblingConflict(ctx, node)
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent of %s: %w", node.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// siblingConflict builds a ConflictError pointing at the existing sibling
func (r *PostgresFileRepository) siblingConflict(ctx context.Context, node *models.FileNode) error {
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
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.FileNode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	node, err := scanFile(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return node, nil
}

// FindSibling returns the node named name under parentID, or nil
func (r *PostgresFileRepository) FindSibling(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid AND name = $3
	`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	node, err := scanFile(executor.QueryRow(ctx, query, projectID, parentID, name))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find sibling: %w", err)
	}

	return node, nil
}

// ListByProject lists every node in a project
func (r *PostgresFileRepository) ListByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 %s`, fileColumns, r.tables.Files, fileOrder)
	return r.list(ctx, query, projectID)
}

// ListChildren lists the direct children of parentID
func (r *PostgresFileRepository) ListChildren(ctx context.Context, projectID string, parentID *string) ([]models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid
		%s
	`, fileColumns, r.tables.Files, fileOrder)
	return r.list(ctx, query, projectID, parentID)
}

func (r *PostgresFileRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.FileNode, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	nodes := []models.FileNode{}
	for rows.Next() {
		node, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		nodes = append(nodes, *node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return nodes, nil
}

// Update updates a node
func (r *PostgresFileRepository) Update(ctx context.Context, node *models.FileNode) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, content = $3, language = $4, size_in_bytes = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		node.ParentID,
		node.Name,
		node.Content,
		node.Language,
		node.SizeInBytes,
		node.UpdatedAt,
		node.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.siblingConflict(ctx, node)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", node.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteMany deletes the given nodes of a project in one statement
func (r *PostgresFileRepository) DeleteMany(ctx context.Context, projectID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1 AND id = ANY($2::uuid[])`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, ids)
	if err != nil {
		return 0, fmt.Errorf("delete files: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteAllByProject deletes every node of a project
func (r *PostgresFileRepository) DeleteAllByProject(ctx context.Context, projectID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete project files: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanFile(row pgx.Row) (*models.FileNode, error) {
	var node models.FileNode
	var nodeType string
	err := row.Scan(
		&node.ID,
		&node.ProjectID,
		&node.ParentID,
		&node.Name,
		&nodeType,
		&node.S3Key,
		&node.Content,
		&node.Language,
		&node.SizeInBytes,
		&node.CreatedAt,
		&node.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	node.Type = models.NodeType(nodeType)
	return &node, nil
}
