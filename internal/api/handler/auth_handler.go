package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/api/middleware"
	"github.com/bookstore/storefront/internal/core/domain"
	"github.com/bookstore/storefront/internal/core/ports"
	"github.com/bookstore/storefront/internal/metrics"
)

type AuthHandler struct {
	authService  ports.AuthService
	sessions     ports.SessionService
	secureCookie bool
	logger       zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, secureCookie bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type registerForm struct {
	Name     string `form:"name" json:"name" validate:"required,max=100"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6,maxbytes=72"`
}

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"next" query:"next"`
}

// RegisterForm renders the sign-up page.
//
// @Summary      Sign-up page
// @Tags         auth
// @Produce      html,json
// @Success      200  {object}  RegisterView
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return Render(c, http.StatusOK, "register", RegisterView{Page: Page{User: currentUser(c)}})
}

// Register creates an account and signs the new user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        body  body      registerForm  true  "Account details"
// @Success      303
// @Failure      400   {object}  ErrorView
// @Failure      409   {object}  RegisterView
// @Failure      422   {object}  RegisterView
// @Failure      429   {object}  ErrorView
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	view := RegisterView{Name: req.Name, Email: req.Email}

	if err := c.Validate(&req); err != nil {
		view.Errors = fieldErrors(err)
		return Render(c, http.StatusUnprocessableEntity, "register", view)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		view.Error = "An account with this email already exists."
		return Render(c, http.StatusConflict, "register", view)
	case errors.Is(err, domain.ErrInvalidInput):
		view.Error = "Please check your name, email and password."
		return Render(c, http.StatusUnprocessableEntity, "register", view)
	case err != nil:
		return err
	}
	metrics.UsersRegisteredTotal.Inc()

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/orders")
}

// LoginForm renders the sign-in page.
//
// @Summary      Sign-in page
// @Tags         auth
// @Produce      html,json
// @Param        next  query     string  false  "Path to return to after sign-in"
// @Success      200   {object}  LoginView
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return Render(c, http.StatusOK, "login", LoginView{
		Page: Page{User: currentUser(c)},
		Next: safeNext(c.QueryParam("next")),
	})
}

// Login verifies credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        body  body      loginForm  true  "Login credentials"
// @Success      303
// @Failure      401   {object}  LoginView
// @Failure      422   {object}  LoginView
// @Failure      429   {object}  ErrorView
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Next == "" {
		req.Next = c.QueryParam("next")
	}
	view := LoginView{Email: req.Email, Next: safeNext(req.Next)}

	if err := c.Validate(&req); err != nil {
		view.Errors = fieldErrors(err)
		return Render(c, http.StatusUnprocessableEntity, "login", view)
	}

	user, err := h.authService.Verify(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			view.Error = "Invalid email or password."
			return Render(c, http.StatusUnauthorized, "login", view)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, view.Next)
}

// Logout revokes the current session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.TokenFrom(c); token != "" {
		if err := h.sessions.Revoke(c.Request().Context(), token); err != nil {
			h.logger.Warn().Err(err).Msg("session revoke failed")
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
	middleware.SetIdentity(c, domain.Anonymous{})
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) startSession(c echo.Context, user *domain.User) error {
	session, err := h.sessions.Issue(c.Request().Context(), user)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, session, h.secureCookie)
	middleware.SetIdentity(c, user)
	return nil
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
