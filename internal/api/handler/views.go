package handler

import (
	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

// View models handed to the HTML templates. They double as the JSON
// response bodies.

type Page struct {
	User *domain.User `json:"user,omitempty"`
}

type HomeView struct {
	Page
	Books []domain.CatalogItem `json:"books"`
}

type BookView struct {
	Page
	Book  *domain.CatalogItem `json:"book,omitempty"`
	Local *domain.CatalogItem `json:"local,omitempty"`
}

type SearchView struct {
	Page
	Query   string               `json:"q"`
	Filters domain.SearchFilters `json:"filters"`
	Results []domain.CatalogItem `json:"results"`
	Errors  map[string]string    `json:"errors,omitempty"`
}

type CheckoutView struct {
	Page
	VolumeID string              `json:"volume_id"`
	Book     *domain.CatalogItem `json:"book,omitempty"`
	Form     checkoutForm        `json:"form"`
	Errors   map[string]string   `json:"errors,omitempty"`
}

type LoginView struct {
	Page
	Email  string            `json:"email,omitempty"`
	Next   string            `json:"next,omitempty"`
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

type RegisterView struct {
	Page
	Name   string            `json:"name,omitempty"`
	Email  string            `json:"email,omitempty"`
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

type OrdersView struct {
	Page
	Orders []ports.OrderView `json:"orders"`
}

type ErrorView struct {
	Page
	Code    int    `json:"code"`
	Message string `json:"error"`
}
