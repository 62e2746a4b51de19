package services

import (
	"context"
	"fmt"
	"time"

	"github.com/docuvault/backend/internal/models"
	"go.uber.org/zap"
)

// DocumentRepository is the interface that wraps methods for Document table data access
type DocumentRepository interface {
	// Method Create inserts a new document into the database.
	//
	// "doc" parameter is used to create a new document; its ID is set on success.
	//
	// If some error occurs during document creation, the error will be returned.
	Create(ctx context.Context, doc *models.Document) error
	// Method GetByID retrieves a document by ID.
	//
	// "docID" parameter is used to retrieve a document by ID.
	//
	// If document with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, docID int) (*models.Document, error)
	// Method List retrieves candidate documents ordered ascending by id.
	//
	// "search" parameter restricts rows to those whose title or content contains the token;
	// an empty search returns every document.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context, search string) ([]models.Document, error)
	// Method Update persists the mutable document fields.
	//
	// "doc" parameter carries the new field values; the document is matched by its ID.
	//
	// If document with such ID does not exist, models.ErrNotFound will be returned.
	Update(ctx context.Context, doc *models.Document) error
	// Method Delete removes a document by ID.
	//
	// "docID" parameter is used to delete a document by ID.
	//
	// If document with such ID does not exist, models.ErrNotFound will be returned.
	Delete(ctx context.Context, docID int) error
	// Method BulkCreate inserts documents in a single statement.
	//
	// "docs" parameter holds the rows to insert; used for seeding fixtures.
	//
	// If some error occurs during insertion, the error will be returned.
	BulkCreate(ctx context.Context, docs []models.Document) error
	// Method ExistsByOwnerTitleContent checks whether the (owner, title, content) triple already exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByOwnerTitleContent(ctx context.Context, ownerID int, title, content string) (bool, error)
}

// ListOptions are the recognized list/search query parameters
type ListOptions struct {
	SearchText string
	Limit      int
	Offset     int
}

// documentService composes the access policy, the search sanitizer and
// pagination into the document query engine
type documentService struct {
	repo            DocumentRepository
	policy          AccessPolicy
	logger          *zap.Logger
	defaultPageSize int
}

// NewDocumentService creates a new document service
func NewDocumentService(repo DocumentRepository, logger *zap.Logger, defaultPageSize int) *documentService {
	return &documentService{
		repo:            repo,
		policy:          NewAccessPolicy(),
		logger:          logger,
		defaultPageSize: defaultPageSize,
	}
}

// Create stores a new document owned by the identity
//
// Access defaults to public when unspecified; access "role" requires a role to
// be named in the same request. A second document with the same owner, title
// and content is rejected without touching the store.
func (s *documentService) Create(ctx context.Context, identity models.Identity, req *models.CreateDocumentRequest) (*models.Document, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", models.ErrValidation)
	}

	access := req.Access
	if access == "" {
		access = models.AccessPublic
	}
	if !access.Valid() {
		return nil, fmt.Errorf("%w: access must be public, private or role", models.ErrValidation)
	}
	if access == models.AccessRole && req.RoleID == 0 {
		return nil, fmt.Errorf("%w: roleId is required when access is role", models.ErrValidation)
	}

	exists, err := s.repo.ExistsByOwnerTitleContent(ctx, identity.UserID, req.Title, req.Content)
	if err != nil {
		s.logger.Error("failed to check document uniqueness", zap.Error(err), zap.Int("ownerId", identity.UserID))
		return nil, fmt.Errorf("failed to check document uniqueness: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateDocument
	}

	now := time.Now()
	doc := &models.Document{
		Title:     req.Title,
		Content:   req.Content,
		OwnerID:   identity.UserID,
		Access:    access,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if access == models.AccessRole {
		doc.RoleID = req.RoleID
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("failed to create document", zap.Error(err), zap.Int("ownerId", identity.UserID))
		return nil, err
	}

	return doc, nil
}

// GetByID fetches a document and authorizes the read.
//
// A missing document and a present-but-denied document are distinct error
// kinds so the handler can answer 404 vs 403.
func (s *documentService) GetByID(ctx context.Context, identity models.Identity, docID int) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanRead(doc, identity) {
		return nil, models.ErrUnauthorized
	}

	return doc, nil
}

// Update patches a document after authorizing the write. OwnerID is immutable.
func (s *documentService) Update(ctx context.Context, identity models.Identity, docID int, req *models.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanWrite(doc, identity) {
		return nil, models.ErrUnauthorized
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", models.ErrValidation)
		}
		doc.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", models.ErrValidation)
		}
		doc.Content = *req.Content
	}
	if req.Access != nil {
		if !req.Access.Valid() {
			return nil, fmt.Errorf("%w: access must be public, private or role", models.ErrValidation)
		}
		doc.Access = *req.Access
	}
	if req.RoleID != nil {
		doc.RoleID = *req.RoleID
	}

	// Moving a document into the role class requires the role to be named in
	// the same transition; leaving the class clears the role reference.
	if doc.Access == models.AccessRole {
		if doc.RoleID == 0 {
			return nil, fmt.Errorf("%w: roleId is required when access is role", models.ErrValidation)
		}
	} else {
		doc.RoleID = 0
	}

	doc.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, doc); err != nil {
		s.logger.Error("failed to update document", zap.Error(err), zap.Int("docId", docID))
		return nil, err
	}

	return doc, nil
}

// Delete removes a document after authorizing the delete
func (s *documentService) Delete(ctx context.Context, identity models.Identity, docID int) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if !s.policy.CanDelete(doc, identity) {
		return models.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, docID); err != nil {
		s.logger.Error("failed to delete document", zap.Error(err), zap.Int("docId", docID))
		return err
	}

	return nil
}

// List returns the documents visible to the identity, ordered ascending by id,
// optionally search-filtered, with offset/limit applied to the already
// filtered and ordered sequence. Total counts the filtered set before paging.
func (s *documentService) List(ctx context.Context, identity models.Identity, opts ListOptions) (*models.DocumentList, error) {
	search := ""
	if opts.SearchText != "" {
		search = SanitizeSearchText(opts.SearchText)
		// An all-symbol search sanitizes to nothing; fail closed instead of
		// matching everything.
		if search == "" {
			return &models.DocumentList{Documents: []models.Document{}, Total: 0}, nil
		}
	}

	candidates, err := s.repo.List(ctx, search)
	if err != nil {
		s.logger.Error("failed to list documents", zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	// Admins see the full candidate set; everyone else only what the access
	// policy grants. The policy stays the single source of visibility truth.
	visible := candidates
	if !identity.IsAdmin {
		visible = make([]models.Document, 0, len(candidates))
		for i := range candidates {
			if s.policy.CanRead(&candidates[i], identity) {
				visible = append(visible, candidates[i])
			}
		}
	}

	total := len(visible)

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultPageSize
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page := visible[offset:end]
	if page == nil {
		page = []models.Document{}
	}

	return &models.DocumentList{Documents: page, Total: total}, nil
}
