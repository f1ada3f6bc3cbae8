package handlers

import (
	"kidzplay/internal/config"
	"kidzplay/internal/repos"
	"kidzplay/internal/services"
)

type Deps struct {
	Store           repos.Store
	Tokens          *services.TokenService
	CategoryHandler *CategoryHandler
	ToyHandler      *ToyHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	AuthHandler     *AuthHandler
	PaymentHandler  *PaymentHandler
}

func NewDeps(store repos.Store, cfg config.Config, tokens *services.TokenService, processor services.IntentCreator) *Deps {
	toyRepo := repos.NewToyRepo(store)
	catRepo := repos.NewCategoryRepo(store)
	cartRepo := repos.NewCartRepo(store)

	catalogSvc := services.NewCatalogService(toyRepo, catRepo)
	cartSvc := services.NewCartService(cartRepo)
	paySvc := services.NewPaymentService(processor, cfg.Currency)

	timeout := cfg.StoreTimeout
	return &Deps{
		Store:           store,
		Tokens:          tokens,
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc, Timeout: timeout},
		ToyHandler:      &ToyHandler{Catalog: catalogSvc, Timeout: timeout},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc, Timeout: timeout},
		CartHandler:     &CartHandler{Cart: cartSvc, Timeout: timeout},
		AuthHandler:     &AuthHandler{Tokens: tokens},
		PaymentHandler:  &PaymentHandler{Payments: paySvc, Timeout: timeout},
	}
}
