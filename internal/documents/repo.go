package documents

import "context"

// Repo defines persistence operations for documents. Every lookup is scoped
// to the owning user; a document owned by someone else is ErrNotFound.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	// ListByUser returns documents in upload order and never nil.
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
