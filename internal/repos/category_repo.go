package repos

import (
	"context"

	"kidzplay/internal/domain"
)

type CategoryRepo struct{ store Store }

func NewCategoryRepo(store Store) *CategoryRepo { return &CategoryRepo{store: store} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Document, error) {
	return r.store.Find(ctx, domain.Categories, Query{})
}

func (r *CategoryRepo) Create(ctx context.Context, doc domain.Document) (domain.InsertResult, error) {
	return r.store.Insert(ctx, domain.Categories, doc)
}

func (r *CategoryRepo) Replace(ctx context.Context, id string, fields domain.Document) (domain.UpdateResult, error) {
	return r.store.Upsert(ctx, domain.Categories, id, fields)
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return r.store.Delete(ctx, domain.Categories, id)
}
