package documents

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalassist-backend/internal/extract"
	"legalassist-backend/internal/shared/metrics"
	"legalassist-backend/internal/shared/storage/object"
	"legalassist-backend/internal/shared/telemetry"
	"legalassist-backend/internal/shared/util"
)

// DefaultMaxUploadBytes caps uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// Limits bounds the work a single upload may cause.
type Limits struct {
	MaxUploadBytes int64
	ExtractTimeout time.Duration
}

// Owners confirms that the user behind a token still has an account.
type Owners interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

const (
	sampleFileName = "Sample_Professional_Services_Agreement.txt"
	sampleTitle    = "Sample Professional Services Agreement"
)

//go:embed sample_contract.txt
var sampleContract string

// Service contains business logic for documents.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	Owners         Owners
	MaxUploadBytes int64
	ExtractTimeout time.Duration
	now            func() time.Time
}

func NewService(store object.ObjectStore, repo Repo, limits Limits) *Service {
	if limits.MaxUploadBytes <= 0 {
		limits.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if limits.ExtractTimeout <= 0 {
		limits.ExtractTimeout = extract.DefaultTimeout
	}
	return &Service{
		Store:          store,
		Repo:           repo,
		MaxUploadBytes: limits.MaxUploadBytes,
		ExtractTimeout: limits.ExtractTimeout,
		now:            time.Now,
	}
}

// Upload stores the file, extracts its text and records the document.
// Unsupported types are rejected before anything is stored. Extraction
// failures are kept on the record instead of failing the upload.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Document, error) {
	if in.UserID == "" || in.Reader == nil {
		return Document{}, ErrInvalidInput
	}
	originalName := strings.TrimSpace(in.FileName)
	if _, err := util.SanitizeFileName(originalName); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	mimeType := extract.NormalizeMimeType(in.ContentType)
	if !extract.Supported(mimeType) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err := s.checkOwner(ctx, in.UserID); err != nil {
		return Document{}, err
	}

	data, err := io.ReadAll(io.LimitReader(in.Reader, s.MaxUploadBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.MaxUploadBytes {
		return Document{}, ErrTooLarge
	}

	key, size, err := s.Store.Save(ctx, originalName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.ExtractTimeout)
	result := extract.Extract(extractCtx, data, mimeType)
	cancel()
	if result.Failed() {
		metrics.IncExtractionFailed(mimeType)
		telemetry.Warn("document.extract_failed", map[string]any{
			"user_id":   in.UserID,
			"file_name": key,
			"mime_type": mimeType,
			"error":     result.Err,
		})
	}

	doc := Document{
		ID:               uuid.NewString(),
		Title:            util.CleanTitle(in.Title, originalName),
		FileName:         key,
		OriginalName:     originalName,
		MimeType:         mimeType,
		Size:             size,
		UserID:           in.UserID,
		ExtractedText:    result.Text,
		ExtractionFailed: result.Failed(),
		UploadedAt:       s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			telemetry.Warn("document.orphan_cleanup_failed", map[string]any{
				"file_name": key,
				"error":     delErr,
			})
		}
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	metrics.IncDocumentUploaded(mimeType)
	telemetry.Info("document.uploaded", map[string]any{
		"user_id":           doc.UserID,
		"document_id":       doc.ID,
		"mime_type":         doc.MimeType,
		"size_bytes":        doc.Size,
		"extraction_failed": doc.ExtractionFailed,
	})
	return doc, nil
}

func (s *Service) checkOwner(ctx context.Context, userID string) error {
	if s.Owners == nil {
		return nil
	}
	ok, err := s.Owners.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check owner: %w", err)
	}
	if !ok {
		return ErrUnknownOwner
	}
	return nil
}

// CreateSample uploads the built-in sample services agreement for the user.
func (s *Service) CreateSample(ctx context.Context, userID string) (Document, error) {
	return s.Upload(ctx, UploadInput{
		UserID:      userID,
		FileName:    sampleFileName,
		ContentType: extract.MimeText,
		Title:       sampleTitle,
		Reader:      strings.NewReader(sampleContract),
	})
}

// List returns the user's documents in upload order.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	docs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

// Get returns one of the user's documents.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// OpenFile opens a stored upload by its file name for read-only serving.
func (s *Service) OpenFile(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if fileName == "" || fileName == "." || fileName == ".." || strings.ContainsAny(fileName, "/\\") {
		return nil, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, fileName)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return rc, nil
}

// Delete removes the record and then the stored file. A file that cannot be
// removed is reported in the result and logged; the delete still succeeds.
func (s *Service) Delete(ctx context.Context, userID, documentID string) (DeleteResult, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return DeleteResult{}, err
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return DeleteResult{}, err
	}

	var res DeleteResult
	if err := s.Store.Delete(ctx, doc.FileName); err != nil {
		res.FileErr = err
		metrics.IncFileRemovalFailed()
		telemetry.Error("document.file_remove_failed", map[string]any{
			"user_id":     userID,
			"document_id": documentID,
			"file_name":   doc.FileName,
			"error":       err,
		})
	}
	return res, nil
}
