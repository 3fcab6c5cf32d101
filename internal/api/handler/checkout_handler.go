package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
	"github.com/bookstore/storefront/internal/metrics"
)

// CheckoutHandler shows the shipping form for a volume and records the
// order. A submission either records exactly one order or re-renders the
// form with field errors and writes nothing.
type CheckoutHandler struct {
	orders     ports.OrderService
	storefront ports.StorefrontService
	logger     zerolog.Logger
}

func NewCheckoutHandler(orders ports.OrderService, storefront ports.StorefrontService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{orders: orders, storefront: storefront, logger: logger}
}

type checkoutForm struct {
	VolumeID  string `form:"volume_id" json:"volume_id"`
	FirstName string `form:"firstName" json:"firstName" validate:"required,max=100"`
	LastName  string `form:"lastName" json:"lastName" validate:"required,max=100"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Address   string `form:"address" json:"address" validate:"required,max=200"`
	Address2  string `form:"address2" json:"address2" validate:"max=200"`
	Country   string `form:"country" json:"country" validate:"required,max=100"`
	Zip       string `form:"zip" json:"zip" validate:"required,max=20"`
	State     string `form:"state" json:"state" validate:"required,max=100"`
}

func (f *checkoutForm) trim() {
	for _, s := range []*string{&f.VolumeID, &f.FirstName, &f.LastName, &f.Email, &f.Address, &f.Address2, &f.Country, &f.Zip, &f.State} {
		*s = strings.TrimSpace(*s)
	}
}

func (f checkoutForm) address() domain.Address {
	return domain.Address{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Address:   f.Address,
		Address2:  f.Address2,
		Country:   f.Country,
		Zip:       f.Zip,
		State:     f.State,
	}
}

// Form renders the checkout form for ?volume_id=.
//
// @Summary      Checkout form
// @Tags         orders
// @Produce      html,json
// @Param        volume_id  query     string  true  "Provider volume id"
// @Success      200        {object}  CheckoutView
// @Failure      303        "Redirect to /login when signed out"
// @Router       /checkout [get]
func (h *CheckoutHandler) Form(c echo.Context) error {
	volumeID := strings.TrimSpace(c.QueryParam("volume_id"))
	return Render(c, http.StatusOK, "checkout", h.view(c, volumeID, checkoutForm{VolumeID: volumeID}, nil))
}

// Submit places the order and returns to the home page.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        volume_id  query     string        false  "Provider volume id (may also be sent in the body)"
// @Param        body       body      checkoutForm  true   "Shipping address"
// @Success      303
// @Failure      303        "Redirect to /login when signed out"
// @Failure      422        {object}  CheckoutView
// @Router       /checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req checkoutForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.VolumeID == "" {
		req.VolumeID = c.QueryParam("volume_id")
	}
	req.trim()

	errs := fieldErrors(c.Validate(&req))
	if req.VolumeID == "" {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["volume_id"] = "volume_id is required"
	}
	if len(errs) > 0 {
		return Render(c, http.StatusUnprocessableEntity, "checkout", h.view(c, req.VolumeID, req, errs))
	}

	order, err := h.orders.PlaceOrder(c.Request().Context(), currentIdentity(c), req.VolumeID, req.address())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return Render(c, http.StatusUnprocessableEntity, "checkout", h.view(c, req.VolumeID, req, map[string]string{"form": err.Error()}))
		}
		return err
	}
	metrics.OrdersPlacedTotal.Inc()

	h.logger.Debug().Str("order_id", order.ID).Msg("checkout complete")
	return c.Redirect(http.StatusSeeOther, "/")
}

// view looks the book up for display only; the form renders without it.
func (h *CheckoutHandler) view(c echo.Context, volumeID string, form checkoutForm, errs map[string]string) CheckoutView {
	view := CheckoutView{
		Page:     Page{User: currentUser(c)},
		VolumeID: volumeID,
		Form:     form,
		Errors:   errs,
	}
	if volumeID != "" {
		if book, err := h.storefront.BookInfo(c.Request().Context(), volumeID); err == nil {
			view.Book = book
		}
	}
	return view
}
