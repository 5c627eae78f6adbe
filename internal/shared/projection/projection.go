package projection

import "time"

// Metadata carries the persistence timestamps of a stored record.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection pairs a domain entity with its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New wraps entity with the given timestamps, normalised to UTC.
func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()},
	}
}

// Entities unwraps a slice of projections.
func Entities[T any](items []*Projection[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item.Entity)
		}
	}
	return out
}
