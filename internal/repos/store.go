package repos

import (
	"context"
	"errors"

	"kidzplay/internal/domain"
)

// ErrInvalidID is returned when an id cannot address a document in the backend.
var ErrInvalidID = errors.New("invalid id")

// Store is the document store every repo runs against.
type Store interface {
	Find(ctx context.Context, coll string, q Query) ([]domain.Document, error)
	// FindOne returns nil, nil when no document matches.
	FindOne(ctx context.Context, coll, id string) (domain.Document, error)
	Insert(ctx context.Context, coll string, doc domain.Document) (domain.InsertResult, error)
	// Upsert sets fields on the document with the given id, creating it if missing.
	Upsert(ctx context.Context, coll, id string, fields domain.Document) (domain.UpdateResult, error)
	Delete(ctx context.Context, coll, id string) (domain.DeleteResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Query struct {
	Filter  []Cond
	SortBy  string
	SortDir int // 1 ascending, -1 descending, 0 store order
	Limit   int64
}

// Cond matches Field exactly, or as a case-insensitive substring when Contains is set.
type Cond struct {
	Field    string
	Value    string
	Contains bool
}

func Eq(field, value string) Cond { return Cond{Field: field, Value: value} }

func Like(field, value string) Cond { return Cond{Field: field, Value: value, Contains: true} }
