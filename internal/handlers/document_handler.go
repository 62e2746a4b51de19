package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/docuvault/backend/internal/auth"
	"github.com/docuvault/backend/internal/models"
	"github.com/docuvault/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DocumentService is the interface that wraps the document query engine operations.
type DocumentService interface {
	// Method Create stores a new document owned by the identity.
	//
	// If the (owner, title, content) triple already exists, models.ErrDuplicateDocument will be returned together with "nil" value.
	Create(ctx context.Context, identity models.Identity, req *models.CreateDocumentRequest) (*models.Document, error)
	// Method GetByID fetches a document and authorizes the read.
	//
	// Returns models.ErrNotFound for a missing id and models.ErrUnauthorized for a present-but-denied document.
	GetByID(ctx context.Context, identity models.Identity, docID int) (*models.Document, error)
	// Method Update patches a document after authorizing the write.
	//
	// Please reference GetByID method for the error values.
	Update(ctx context.Context, identity models.Identity, docID int, req *models.UpdateDocumentRequest) (*models.Document, error)
	// Method Delete removes a document after authorizing the delete.
	//
	// Please reference GetByID method for the error values.
	Delete(ctx context.Context, identity models.Identity, docID int) error
	// Method List returns the documents visible to the identity with search and paging applied.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context, identity models.Identity, opts services.ListOptions) (*models.DocumentList, error)
}

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	BaseHandler
	documentService DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		documentService: documentService,
	}
}

// RegisterRoutes registers all document handler routes; the router must
// already run the auth middleware
func (h *DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	r.Get("/search", h.List)
}

// Create handles POST /documents
// @Summary Create a document
// @Description Create a new document owned by the caller. Access defaults to public.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body models.CreateDocumentRequest true "Document payload"
// @Success 201 {object} map[string]any "Document created"
// @Failure 400 {object} map[string]string "Missing or invalid fields"
// @Failure 403 {object} map[string]string "Duplicate document"
// @Router /documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.documentService.Create(r.Context(), identity, &req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateDocument) {
			h.RespondError(w, http.StatusForbidden, "This document already exists, change the title or content")
			return
		}
		h.Logger.Error("failed to create document", zap.Error(err))
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Document Created",
		"doc":     doc,
	})
}

// GetByID handles GET /documents/{id}
// @Summary Get a document
// @Description Get a document by ID if the caller is allowed to read it
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]any "Document found"
// @Failure 403 {object} map[string]string "Not visible to the caller"
// @Failure 404 {object} map[string]string "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(r.Context(), identity, id)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			// Uniform message; never confirms what the document contains
			h.RespondError(w, http.StatusForbidden, "Unauthorised to view this document")
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.Logger.Error("failed to get document", zap.Error(err), zap.Int("docId", id))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "A document was found",
		"doc":     doc,
	})
}

// Update handles PUT /documents/{id}
// @Summary Update a document
// @Description Update title, content, access or role of a document the caller owns (or any document for admins)
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param request body models.UpdateDocumentRequest true "Fields to update"
// @Success 201 {object} map[string]any "Document updated"
// @Failure 403 {object} map[string]string "Caller may not update this document"
// @Failure 404 {object} map[string]string "Document not found"
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	var req models.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.documentService.Update(r.Context(), identity, id, &req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "Document not found")
			return
		}
		if !errors.Is(err, models.ErrUnauthorized) {
			h.Logger.Error("failed to update document", zap.Error(err), zap.Int("docId", id))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Your doc has been updated",
		"doc":     doc,
	})
}

// Delete handles DELETE /documents/{id}
// @Summary Delete a document
// @Description Delete a document the caller owns (or any document for admins)
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]string "Document deleted"
// @Failure 403 {object} map[string]string "Caller may not delete this document"
// @Failure 404 {object} map[string]string "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid document ID")
		return
	}

	if err := h.documentService.Delete(r.Context(), identity, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "This record was not deleted!")
			return
		}
		if !errors.Is(err, models.ErrUnauthorized) {
			h.Logger.Error("failed to delete document", zap.Error(err), zap.Int("docId", id))
		}
		h.RespondError(w, statusFromError(err), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "The Document was deleted"})
}

// List handles GET /documents and GET /search
// @Summary List documents
// @Description List the documents visible to the caller, ordered by creation, with optional search and paging
// @Tags documents
// @Produce json
// @Param limit query int false "Page size (default: 10)"
// @Param offset query int false "Rows to skip (default: 0)"
// @Param searchText query string false "Search token, sanitized to alphanumerics before matching"
// @Success 200 {object} models.DocumentList "Visible documents"
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Please Login!")
		return
	}

	opts := services.ListOptions{}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			opts.Offset = o
		}
	}

	// Passed through untrimmed: the sanitizer strips whitespace itself, and a
	// whitespace-only search must count as a provided-but-empty token (zero
	// matches), not as no search at all.
	opts.SearchText = r.URL.Query().Get("searchText")

	list, err := h.documentService.List(r.Context(), identity, opts)
	if err != nil {
		h.Logger.Error("failed to list documents", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}
