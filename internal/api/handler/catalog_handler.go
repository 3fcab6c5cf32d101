package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
)

// CatalogHandler serves the read-only storefront pages.
type CatalogHandler struct {
	storefront ports.StorefrontService
}

func NewCatalogHandler(storefront ports.StorefrontService) *CatalogHandler {
	return &CatalogHandler{storefront: storefront}
}

type searchForm struct {
	Query     string `query:"q" form:"q" json:"q"`
	EbookType string `query:"ebook_type" form:"ebook_type" json:"ebook_type" validate:"omitempty,oneof=free paid physical"`
	Language  string `query:"language" form:"language" json:"language" validate:"omitempty,len=2,alpha"`
	OrderBy   string `query:"order_by" form:"order_by" json:"order_by" validate:"omitempty,oneof=relevance newest"`
}

// normalize accepts the labels the search form displays ("Newest",
// "PaperBack", "English") as well as the canonical values.
func (f *searchForm) normalize() {
	f.Query = strings.TrimSpace(f.Query)
	f.EbookType = strings.ToLower(strings.TrimSpace(f.EbookType))
	if f.EbookType == "paperback" {
		f.EbookType = string(domain.EbookPhysical)
	}
	f.Language = strings.ToLower(strings.TrimSpace(f.Language))
	if f.Language == "english" {
		f.Language = "en"
	}
	f.OrderBy = strings.ToLower(strings.TrimSpace(f.OrderBy))
}

func (f searchForm) filters() domain.SearchFilters {
	return domain.SearchFilters{
		EbookType: domain.EbookType(f.EbookType),
		Language:  f.Language,
		OrderBy:   domain.SearchOrder(f.OrderBy),
	}
}

// Home renders a random selection from the local catalog.
//
// @Summary      Home page
// @Tags         catalog
// @Produce      html,json
// @Success      200  {object}  HomeView
// @Router       / [get]
func (h *CatalogHandler) Home(c echo.Context) error {
	books := h.storefront.Home(c.Request().Context())
	return Render(c, http.StatusOK, "home", HomeView{
		Page:  Page{User: currentUser(c)},
		Books: books,
	})
}

// Book renders a volume next to its local dataset entry.
//
// @Summary      Book detail
// @Tags         catalog
// @Produce      html,json
// @Param        volume_id  query     string  false  "Provider volume id"
// @Param        isbn       query     string  false  "ISBN of the local dataset entry"
// @Success      200        {object}  BookView
// @Failure      404        {object}  ErrorView
// @Router       /book [get]
func (h *CatalogHandler) Book(c echo.Context) error {
	detail, err := h.storefront.Book(c.Request().Context(), c.QueryParam("volume_id"), c.QueryParam("isbn"))
	if err != nil {
		return err
	}

	book := detail.Remote
	if book == nil {
		book = detail.Local
	}
	return Render(c, http.StatusOK, "book", BookView{
		Page:  Page{User: currentUser(c)},
		Book:  book,
		Local: detail.Local,
	})
}

// BookInfo renders a volume known only to the provider, e.g. a search hit.
//
// @Summary      Book info
// @Tags         catalog
// @Produce      html,json
// @Param        volume_id  query     string  true  "Provider volume id"
// @Success      200        {object}  BookView
// @Failure      404        {object}  ErrorView
// @Router       /book_info [get]
func (h *CatalogHandler) BookInfo(c echo.Context) error {
	book, err := h.storefront.BookInfo(c.Request().Context(), c.QueryParam("volume_id"))
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, "book", BookView{
		Page: Page{User: currentUser(c)},
		Book: book,
	})
}

// Search queries the catalog provider.
//
// @Summary      Search books
// @Tags         catalog
// @Produce      html,json
// @Param        q           query     string  false  "Search terms (default Fiction)"
// @Param        ebook_type  query     string  false  "free, paid or physical"
// @Param        language    query     string  false  "Two-letter language code (default en)"
// @Param        order_by    query     string  false  "relevance or newest"
// @Success      200         {object}  SearchView
// @Failure      422         {object}  SearchView
// @Router       /search [get]
// @Router       /search [post]
func (h *CatalogHandler) Search(c echo.Context) error {
	var req searchForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid search")
	}
	req.normalize()

	view := SearchView{
		Page:    Page{User: currentUser(c)},
		Query:   req.Query,
		Filters: req.filters(),
		Results: []domain.CatalogItem{},
	}
	if err := c.Validate(&req); err != nil {
		view.Errors = fieldErrors(err)
		return Render(c, http.StatusUnprocessableEntity, "search", view)
	}

	view.Results = h.storefront.Search(c.Request().Context(), req.Query, view.Filters)
	return Render(c, http.StatusOK, "search", view)
}

// Orders lists the signed-in user's orders.
//
// @Summary      Order history
// @Tags         orders
// @Produce      html,json
// @Success      200  {object}  OrdersView
// @Failure      303  "Redirect to /login when signed out"
// @Router       /orders [get]
func (h *CatalogHandler) Orders(c echo.Context) error {
	orders, err := h.storefront.OrderHistory(c.Request().Context(), currentIdentity(c))
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, "orders", OrdersView{
		Page:   Page{User: currentUser(c)},
		Orders: orders,
	})
}
