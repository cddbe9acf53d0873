package documents

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Harshmohod/land-verification/internal/shared/server/middleware"
	"github.com/Harshmohod/land-verification/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/upload", h.upload)
	rg.GET("/documents", h.list)
	rg.PUT("/documents/:id/verify", h.verify)
	rg.GET("/documents/:id/file", h.file)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("document")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "no file uploaded", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "only image, PDF, and document files are allowed", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "unable to read file", nil)
		return
	}
	defer file.Close()

	title := c.PostForm("title")

	doc, err := h.Svc.Upload(c.Request.Context(), userID, title, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to upload document", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, gin.H{"documentId": doc.ID})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	role := middleware.RoleFromContext(c)

	docs, err := h.Svc.ListFor(c.Request.Context(), userID, role)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "access denied", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list documents", nil)
		return
	}

	respond.OK(c, gin.H{"documents": toResponses(docs)})
}

type verifyRequest struct {
	Status string `json:"status"`
	Review string `json:"review"`
	Issue  string `json:"issue"`
}

func (h *Handler) verify(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	role := middleware.RoleFromContext(c)
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "invalid request body", nil)
		return
	}

	err := h.Svc.Verify(c.Request.Context(), userID, role, documentID, req.Status, req.Review, req.Issue)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "only reviewers can verify documents", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "document not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, respond.CodeInvalidTransition, "document already decided", nil)
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrIssueRequired):
			respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to verify document", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "document verified successfully"})
}

func (h *Handler) file(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	role := middleware.RoleFromContext(c)
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, body, err := h.Svc.OpenFile(c.Request.Context(), userID, role, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "access denied", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to open document", nil)
		}
		return
	}
	defer body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `inline; filename="` + doc.FileName + `"`,
	}
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.MimeType, body, extraHeaders)
}
