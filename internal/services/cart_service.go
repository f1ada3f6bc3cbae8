package services

import (
	"context"

	"kidzplay/internal/domain"
	"kidzplay/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

func (s *CartService) Items(ctx context.Context, email string) ([]domain.Document, error) {
	return s.Carts.ByEmail(ctx, email)
}

func (s *CartService) Add(ctx context.Context, item domain.Document) (domain.InsertResult, error) {
	return s.Carts.Add(ctx, item)
}

func (s *CartService) Remove(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.Carts.Remove(ctx, id)
}
