package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
)

// documentRepository implements DocumentRepository
type documentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *documentRepository {
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// nullableRoleID converts a zero role ID into SQL NULL so the role foreign key
// only applies to role-scoped documents
func nullableRoleID(roleID int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(roleID), Valid: roleID != 0}
}

// Create inserts a new document into the database
func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (title, content, owner_id, access, role_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		doc.Title, doc.Content, doc.OwnerID, string(doc.Access), nullableRoleID(doc.RoleID))
	if err != nil {
		r.logger.Error("failed to create document", zap.Error(err), zap.Int("ownerId", doc.OwnerID))
		return fmt.Errorf("failed to create document: %w", translateError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = int(id)
	return nil
}

// GetByID retrieves a document by ID
func (r *documentRepository) GetByID(ctx context.Context, docID int) (*models.Document, error) {
	query := `
		SELECT id, title, content, owner_id, access, role_id, created_at, updated_at
		FROM documents
		WHERE id = ?
		LIMIT 1
	`

	doc := &models.Document{}
	var roleID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, docID).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.OwnerID,
		&doc.Access,
		&roleID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get document by id", zap.Error(err), zap.Int("docId", docID))
		return nil, fmt.Errorf("failed to get document by id: %w", err)
	}

	if roleID.Valid {
		doc.RoleID = int(roleID.Int64)
	}

	return doc, nil
}

// List retrieves candidate documents ordered ascending by id. When search is
// non-empty, rows are restricted to those whose title or content contains the
// token (case-insensitive under the column collation). Visibility filtering
// and paging happen in the service on top of this ordered candidate set.
func (r *documentRepository) List(ctx context.Context, search string) ([]models.Document, error) {
	var whereClause string
	var args []any

	if search != "" {
		whereClause = `WHERE title LIKE ? OR content LIKE ?`
		searchValue := "%" + search + "%"
		args = append(args, searchValue, searchValue)
	}

	query := fmt.Sprintf(`
		SELECT id, title, content, owner_id, access, role_id, created_at, updated_at
		FROM documents
		%s
		ORDER BY id ASC
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query documents", zap.Error(err))
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		var roleID sql.NullInt64
		err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.OwnerID,
			&doc.Access,
			&roleID,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if roleID.Valid {
			doc.RoleID = int(roleID.Int64)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return docs, nil
}

// Update persists the mutable document fields and bumps updated_at
func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents
		SET title = ?, content = ?, access = ?, role_id = ?, updated_at = NOW()
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		doc.Title, doc.Content, string(doc.Access), nullableRoleID(doc.RoleID), doc.ID)
	if err != nil {
		r.logger.Error("failed to update document", zap.Error(err), zap.Int("docId", doc.ID))
		return fmt.Errorf("failed to update document: %w", translateError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes a document by ID
func (r *documentRepository) Delete(ctx context.Context, docID int) error {
	query := `DELETE FROM documents WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, docID)
	if err != nil {
		r.logger.Error("failed to delete document", zap.Error(err), zap.Int("docId", docID))
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// BulkCreate inserts documents in a single statement, used for seeding fixtures
func (r *documentRepository) BulkCreate(ctx context.Context, docs []models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	placeholders := make([]string, len(docs))
	args := make([]any, 0, len(docs)*5)
	for i, doc := range docs {
		placeholders[i] = "(?, ?, ?, ?, ?, NOW(), NOW())"
		args = append(args, doc.Title, doc.Content, doc.OwnerID, string(doc.Access), nullableRoleID(doc.RoleID))
	}

	query := fmt.Sprintf(`
		INSERT INTO documents (title, content, owner_id, access, role_id, created_at, updated_at)
		VALUES %s
	`, strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to bulk create documents", zap.Error(err), zap.Int("count", len(docs)))
		return fmt.Errorf("failed to bulk create documents: %w", translateError(err))
	}

	return nil
}

// ExistsByOwnerTitleContent checks whether the (owner, title, content) triple
// already exists
func (r *documentRepository) ExistsByOwnerTitleContent(ctx context.Context, ownerID int, title, content string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM documents WHERE owner_id = ? AND title = ? AND content = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, title, content).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check document existence", zap.Error(err), zap.Int("ownerId", ownerID))
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}

	return exists, nil
}
