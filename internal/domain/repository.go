package domain

import "context"

// DatasetSource defines the interface for reading the raw tabular
// restaurant dataset
type DatasetSource interface {
	Load(ctx context.Context) (*RawTable, error)
}

// FilteredSetStore defines the interface for the opaque-handle store
// that carries filtered sets between a recommend call and later rerank
// calls. The core holds no hidden state between calls; this store is
// the external collaborator that does.
type FilteredSetStore interface {
	Put(ctx context.Context, set *FilteredSet) (string, error)
	Get(ctx context.Context, handle string) (*FilteredSet, error)
	Delete(ctx context.Context, handle string) error
}

// FeedbackRepository defines the interface for feedback persistence
type FeedbackRepository interface {
	Save(ctx context.Context, fb *Feedback) error
	Recent(ctx context.Context, limit int) ([]Feedback, error)
}
