package repos

import (
	"context"

	"kidzplay/internal/domain"
)

// CartRepo has no update: items are added and removed whole.
type CartRepo struct{ store Store }

func NewCartRepo(store Store) *CartRepo { return &CartRepo{store: store} }

func (r *CartRepo) ByEmail(ctx context.Context, email string) ([]domain.Document, error) {
	return r.store.Find(ctx, domain.Carts, Query{Filter: []Cond{Eq(domain.CartPurchaserEmail, email)}})
}

func (r *CartRepo) Add(ctx context.Context, item domain.Document) (domain.InsertResult, error) {
	return r.store.Insert(ctx, domain.Carts, item)
}

func (r *CartRepo) Remove(ctx context.Context, id string) (domain.DeleteResult, error) {
	return r.store.Delete(ctx, domain.Carts, id)
}
