package services

import (
	"context"

	"kidzplay/internal/domain"
	"kidzplay/internal/repos"
)

const DefaultToyLimit = 20

type CatalogService struct {
	Toys       *repos.ToyRepo
	Categories *repos.CategoryRepo
}

func NewCatalogService(toys *repos.ToyRepo, cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Toys: toys, Categories: cats}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Document, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, doc domain.Document) (domain.InsertResult, error) {
	return s.Categories.Create(ctx, doc)
}

// ReplaceCategory upserts the category label only.
func (s *CatalogService) ReplaceCategory(ctx context.Context, id string, body domain.Document) (domain.UpdateResult, error) {
	return s.Categories.Replace(ctx, id, domain.Pick(body, domain.CategoryFields))
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.Categories.Delete(ctx, id)
}

// ListToys caps the result at limit, or DefaultToyLimit when limit is not positive.
func (s *CatalogService) ListToys(ctx context.Context, limit int64) ([]domain.Document, error) {
	if limit <= 0 {
		limit = DefaultToyLimit
	}
	return s.Toys.List(ctx, limit)
}

func (s *CatalogService) Toy(ctx context.Context, id string) (domain.Document, error) {
	return s.Toys.Get(ctx, id)
}

func (s *CatalogService) ToysBySubCategory(ctx context.Context, sub string) ([]domain.Document, error) {
	return s.Toys.BySubCategory(ctx, sub)
}

func (s *CatalogService) SearchToys(ctx context.Context, name string) ([]domain.Document, error) {
	return s.Toys.SearchByName(ctx, name)
}

func (s *CatalogService) SellerToys(ctx context.Context, email string, priceDir int) ([]domain.Document, error) {
	return s.Toys.BySeller(ctx, email, priceDir)
}

func (s *CatalogService) CreateToy(ctx context.Context, doc domain.Document) (domain.InsertResult, error) {
	return s.Toys.Create(ctx, doc)
}

// ReplaceToy writes exactly domain.ToyFields; other body fields are dropped and
// stored fields outside the set are left alone.
func (s *CatalogService) ReplaceToy(ctx context.Context, id string, body domain.Document) (domain.UpdateResult, error) {
	return s.Toys.Replace(ctx, id, domain.Pick(body, domain.ToyFields))
}

func (s *CatalogService) DeleteToy(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.Toys.Delete(ctx, id)
}
