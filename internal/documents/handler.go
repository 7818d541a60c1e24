package documents

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"legalassist-backend/internal/shared/server/middleware"
	"legalassist-backend/internal/shared/server/respond"
)

// multipartOverhead leaves room for boundaries and the title field.
const multipartOverhead = 1 << 20

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
	rg.POST("/files", h.upload)
	rg.POST("/files/sample", h.createSample)
	rg.GET("/files", h.list)
	rg.GET("/files/:id", h.get)
	rg.DELETE("/files/:id", h.delete)
}

// RegisterFileRoutes serves stored uploads at /uploads/:name from the object store.
func (h *Handler) RegisterFileRoutes(r gin.IRoutes) {
	r.GET("/uploads/:name", h.serveFile)
	r.HEAD("/uploads/:name", h.serveFile)
}

func (h *Handler) serveFile(c *gin.Context) {
	name := c.Param("name")
	rc, err := h.Svc.OpenFile(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"X-Content-Type-Options": "nosniff",
	})
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "File too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), UploadInput{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Title:       c.PostForm("title"),
		Reader:      file,
	})
	if err != nil {
		h.uploadError(c, err)
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc))
}

func (h *Handler) createSample(c *gin.Context) {
	doc, err := h.Svc.CreateSample(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.uploadError(c, err)
		return
	}
	c.Set("documentId", doc.ID)
	respond.OK(c, toResponse(doc))
}

func (h *Handler) uploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "Invalid file type. Only PDF, DOCX, and TXT files are allowed.", nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "File too large", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
	case errors.Is(err, ErrUnknownOwner):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "User no longer exists", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error uploading file", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	respond.OK(c, toResponses(docs))
}

func (h *Handler) get(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), documentID)
	if err != nil {
		h.lookupError(c, err)
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) delete(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	if _, err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), documentID); err != nil {
		h.lookupError(c, err)
		return
	}
	respond.Message(c, "Document deleted successfully")
}

func (h *Handler) lookupError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load document", nil)
}
