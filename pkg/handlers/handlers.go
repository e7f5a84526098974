// Package handlers exposes the document scanner over HTTP with gin.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"scan-qa/pkg/models"
	"scan-qa/pkg/services/markdown"
	"scan-qa/pkg/services/preprocess"
	"scan-qa/pkg/services/qa"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Documents is the document storage the API reads from
type Documents interface {
	Get(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context, limit int) ([]models.Document, error)
	Delete(ctx context.Context, id uint) error
}

// Scanner turns an uploaded image into a stored document
type Scanner interface {
	Scan(ctx context.Context, sourceName string, img image.Image) (*models.Document, error)
}

// Asker answers questions about a document's Markdown
type Asker interface {
	Ask(ctx context.Context, document, question string) (*qa.Answer, error)
}

// Handler serves the document API
type Handler struct {
	docs           Documents
	scanner        Scanner
	asker          Asker
	maxUploadBytes int64
	logger         zerolog.Logger
}

// New creates a handler. asker may be nil, in which case /ask returns 503.
func New(docs Documents, scanner Scanner, asker Asker, maxUploadBytes int64, logger zerolog.Logger) *Handler {
	return &Handler{
		docs:           docs,
		scanner:        scanner,
		asker:          asker,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Register mounts every route on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.health)

	docs := r.Group("/documents")
	docs.POST("", h.scanDocument)
	docs.GET("", h.listDocuments)
	docs.GET("/:id", h.getDocument)
	docs.GET("/:id/markdown", h.getMarkdown)
	docs.GET("/:id/html", h.getHTML)
	docs.DELETE("/:id", h.deleteDocument)
	docs.POST("/:id/ask", h.askDocument)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) scanDocument(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer file.Close()

	img, err := preprocess.Decode(file)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc, err := h.scanner.Scan(c.Request.Context(), fileHeader.Filename, img)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *Handler) listDocuments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	docs, err := h.docs.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) getDocument(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"document": doc,
		"sections": doc.Sections(),
	})
}

func (h *Handler) getMarkdown(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc.Markdown))
}

func (h *Handler) getHTML(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}
	html, err := markdown.ToHTML(doc.Markdown)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) deleteDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.docs.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *Handler) askDocument(c *gin.Context) {
	if h.asker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "question answering is not configured"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	doc, ok := h.lookup(c)
	if !ok {
		return
	}

	ans, err := h.asker.Ask(c.Request.Context(), doc.Markdown, req.Question)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"question": ans.Question,
		"answer":   ans.Text,
		"cached":   ans.Cached,
	})
}

func (h *Handler) lookup(c *gin.Context) (*models.Document, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	doc, err := h.docs.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return doc, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyQuestion),
		errors.Is(err, models.ErrImageLoad),
		errors.Is(err, models.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrLLMRequestFailed),
		errors.Is(err, models.ErrRecognition):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	if models.KindOf(err) == models.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
