package repos

import (
	"context"

	"kidzplay/internal/domain"
)

type ToyRepo struct{ store Store }

func NewToyRepo(store Store) *ToyRepo { return &ToyRepo{store: store} }

func (r *ToyRepo) List(ctx context.Context, limit int64) ([]domain.Document, error) {
	return r.store.Find(ctx, domain.Toys, Query{Limit: limit})
}

func (r *ToyRepo) Get(ctx context.Context, id string) (domain.Document, error) {
	return r.store.FindOne(ctx, domain.Toys, id)
}

// BySubCategory matches the label exactly; an empty label lists everything.
func (r *ToyRepo) BySubCategory(ctx context.Context, sub string) ([]domain.Document, error) {
	var q Query
	if sub != "" {
		q.Filter = []Cond{Eq(domain.ToySubCategory, sub)}
	}
	return r.store.Find(ctx, domain.Toys, q)
}

// SearchByName is a case-insensitive substring match on the toy name.
func (r *ToyRepo) SearchByName(ctx context.Context, name string) ([]domain.Document, error) {
	var q Query
	if name != "" {
		q.Filter = []Cond{Like(domain.ToyName, name)}
	}
	return r.store.Find(ctx, domain.Toys, q)
}

func (r *ToyRepo) BySeller(ctx context.Context, email string, priceDir int) ([]domain.Document, error) {
	q := Query{Filter: []Cond{Eq(domain.ToySellerEmail, email)}}
	if priceDir != 0 {
		q.SortBy, q.SortDir = domain.ToyPrice, priceDir
	}
	return r.store.Find(ctx, domain.Toys, q)
}

func (r *ToyRepo) Create(ctx context.Context, doc domain.Document) (domain.InsertResult, error) {
	return r.store.Insert(ctx, domain.Toys, doc)
}

func (r *ToyRepo) Replace(ctx context.Context, id string, fields domain.Document) (domain.UpdateResult, error) {
	return r.store.Upsert(ctx, domain.Toys, id, fields)
}

func (r *ToyRepo) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	return r.store.Delete(ctx, domain.Toys, id)
}
