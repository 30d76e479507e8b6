// internal/domain/cycle/repository.go
package cycle

import (
	"context"
)

// Repository defines the persistence collaborator for cycle records.
// The tracker only exchanges whole snapshots with it: LoadAll at
// session start, ReplaceAll at session end. The on-disk layout is the
// implementation's concern.
type Repository interface {
	LoadAll(ctx context.Context) ([]Record, error)
	ReplaceAll(ctx context.Context, records []Record) error
}
