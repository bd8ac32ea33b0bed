package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

// Importer is the part of the import service the HTTP layer needs.
type Importer interface {
	ImportDocuments(ctx context.Context, clientKey string, docs []models.RawDocument, opts models.ImportOptions) (*models.BatchImportResult, error)
	ImportFromURL(ctx context.Context, clientKey, url string, opts models.ImportOptions) (*models.ImportOutcome, error)
}

type ImportHandler struct {
	importer Importer
}

func NewImportHandler(importer Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

type linkImportRequest struct {
	URL     string `json:"url"`
	Geocode bool   `json:"geocode"`
}

// ImportHTML handles POST /api/imports/html with one or more "files" parts.
// It answers 201 when every file became a listing and 207 otherwise.
func (h *ImportHandler) ImportHTML(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperrors.NewValidationError(map[string]string{"files": "Upload at least one HTML file."}))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.Error(apperrors.NewValidationError(map[string]string{"files": "Upload at least one HTML file."}))
		return
	}

	docs := make([]models.RawDocument, 0, len(files))
	for _, fh := range files {
		content, err := readUpload(fh)
		if err != nil {
			c.Error(apperrors.NewValidationError(map[string]string{"files": fmt.Sprintf("%s: %v", fh.Filename, err)}))
			return
		}
		docs = append(docs, models.RawDocument{Source: fh.Filename, Content: content})
	}

	opts := models.ImportOptions{Geocode: parseBool(c.PostForm("geocode"))}
	result, err := h.importer.ImportDocuments(c.Request.Context(), c.ClientIP(), docs, opts)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusCreated
	if len(result.Errors) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// ImportLink handles POST /api/imports/link.
func (h *ImportHandler) ImportLink(c *gin.Context) {
	var req linkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewAppError(err.Error(), apperrors.MsgInvalidParameters, apperrors.ErrCodeInvalidParameters, http.StatusBadRequest, err))
		return
	}

	outcome, err := h.importer.ImportFromURL(c.Request.Context(), c.ClientIP(), req.URL, models.ImportOptions{Geocode: req.Geocode})
	if err != nil {
		c.Error(err)
		return
	}
	if outcome.Errors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": outcome.Errors})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": outcome.Summary()})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
