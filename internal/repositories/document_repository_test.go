package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/docuvault/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupDocumentRepository creates a document repository with a mock database
func setupDocumentRepository(t *testing.T) (*documentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewDocumentRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func documentColumns() []string {
	return []string{"id", "title", "content", "owner_id", "access", "role_id", "created_at", "updated_at"}
}

func TestDocumentRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		doc           models.Document
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedID    int
	}{
		{
			name: "success public document stores null role",
			doc:  models.Document{Title: "Notes", Content: "body", OwnerID: 3, Access: models.AccessPublic},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO documents").
					WithArgs("Notes", "body", 3, "public", nil).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "success role document stores the role id",
			doc:  models.Document{Title: "Brief", Content: "body", OwnerID: 3, Access: models.AccessRole, RoleID: 2},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO documents").
					WithArgs("Brief", "body", 3, "role", int64(2)).
					WillReturnResult(sqlmock.NewResult(8, 1))
			},
			expectedID: 8,
		},
		{
			name: "missing owner maps to foreign key error",
			doc:  models.Document{Title: "Orphan", Content: "body", OwnerID: 999, Access: models.AccessPublic},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO documents").
					WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})
			},
			expectedError: models.ErrForeignKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupDocumentRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			doc := tt.doc
			err := repo.Create(context.Background(), &doc)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, doc.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentRepository_GetByID(t *testing.T) {
	now := time.Now()

	t.Run("scans a role-scoped document", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(documentColumns()).
			AddRow(5, "Brief", "body", 3, "role", 2, now, now)
		mock.ExpectQuery("SELECT id, title, content, owner_id, access, role_id, created_at, updated_at FROM documents WHERE id =").
			WithArgs(5).
			WillReturnRows(rows)

		doc, err := repo.GetByID(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 5, doc.ID)
		assert.Equal(t, models.AccessRole, doc.Access)
		assert.Equal(t, 2, doc.RoleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null role scans to zero", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(documentColumns()).
			AddRow(6, "Notes", "body", 3, "public", nil, now, now)
		mock.ExpectQuery("SELECT id, title, content, owner_id, access, role_id, created_at, updated_at FROM documents WHERE id =").
			WithArgs(6).
			WillReturnRows(rows)

		doc, err := repo.GetByID(context.Background(), 6)

		require.NoError(t, err)
		assert.Zero(t, doc.RoleID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectQuery("SELECT id, title, content, owner_id, access, role_id, created_at, updated_at FROM documents WHERE id =").
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(documentColumns()))

		doc, err := repo.GetByID(context.Background(), 404)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, doc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_List(t *testing.T) {
	now := time.Now()

	t.Run("empty search selects everything ordered by id", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(documentColumns()).
			AddRow(1, "First", "a", 3, "public", nil, now, now).
			AddRow(2, "Second", "b", 3, "private", nil, now, now)
		mock.ExpectQuery("SELECT id, title, content, owner_id, access, role_id, created_at, updated_at FROM documents ORDER BY id ASC").
			WillReturnRows(rows)

		docs, err := repo.List(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 1, docs[0].ID)
		assert.Equal(t, 2, docs[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search filters by title or content with wildcards", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(documentColumns()).
			AddRow(4, "Quarterly report", "numbers", 3, "public", nil, now, now)
		mock.ExpectQuery("FROM documents WHERE title LIKE . OR content LIKE .").
			WithArgs("%report%", "%report%").
			WillReturnRows(rows)

		docs, err := repo.List(context.Background(), "report")

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, 4, docs[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error is propagated", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectQuery("FROM documents ORDER BY id ASC").
			WillReturnError(errors.New("database error"))

		docs, err := repo.List(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectExec("UPDATE documents SET").
			WithArgs("Renamed", "body", "private", nil, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &models.Document{
			ID: 5, Title: "Renamed", Content: "body", Access: models.AccessPrivate,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectExec("UPDATE documents SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &models.Document{
			ID: 404, Title: "Ghost", Content: "body", Access: models.AccessPublic,
		})

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectExec("DELETE FROM documents WHERE id =").
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 5)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to not found", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectExec("DELETE FROM documents WHERE id =").
			WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 404)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_BulkCreate(t *testing.T) {
	t.Run("inserts all rows in one statement", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO documents").
			WithArgs("One", "a", 3, "public", nil, "Two", "b", 3, "role", int64(2)).
			WillReturnResult(sqlmock.NewResult(2, 2))

		err := repo.BulkCreate(context.Background(), []models.Document{
			{Title: "One", Content: "a", OwnerID: 3, Access: models.AccessPublic},
			{Title: "Two", Content: "b", OwnerID: 3, Access: models.AccessRole, RoleID: 2},
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		repo, mock, cleanup := setupDocumentRepository(t)
		defer cleanup()

		err := repo.BulkCreate(context.Background(), nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_ExistsByOwnerTitleContent(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		expected bool
	}{
		{name: "triple exists", exists: true, expected: true},
		{name: "triple does not exist", exists: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupDocumentRepository(t)
			defer cleanup()

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists)
			mock.ExpectQuery("SELECT EXISTS").
				WithArgs(3, "Notes", "body").
				WillReturnRows(rows)

			exists, err := repo.ExistsByOwnerTitleContent(context.Background(), 3, "Notes", "body")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
