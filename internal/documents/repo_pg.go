package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var documentColumns = []string{
	"id",
	"title",
	"file_name",
	"original_name",
	"mime_type",
	"size_bytes",
	"user_id",
	"extracted_text",
	"extraction_failed",
	"uploaded_at",
}

// PGRepo implements Repo using Postgres. Upload order is the seq column.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	query, args, err := psql.Insert("documents").
		Columns(documentColumns...).
		Values(
			doc.ID,
			doc.Title,
			doc.FileName,
			doc.OriginalName,
			doc.MimeType,
			doc.Size,
			doc.UserID,
			doc.ExtractedText,
			doc.ExtractionFailed,
			doc.UploadedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert document: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	query, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"user_id": userID, "id": documentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("build select document: %w", err)
	}

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("select document: %w", err)
	}
	return doc, nil
}

// ListByUser lists a user's documents in upload order.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	query, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	query, args, err := psql.Delete("documents").
		Where(sq.Eq{"user_id": userID, "id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.FileName,
		&doc.OriginalName,
		&doc.MimeType,
		&doc.Size,
		&doc.UserID,
		&doc.ExtractedText,
		&doc.ExtractionFailed,
		&doc.UploadedAt,
	)
	return doc, err
}

var _ Repo = (*PGRepo)(nil)
