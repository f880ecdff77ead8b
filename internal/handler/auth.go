package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/molticket/webgate/internal/middleware"
	"github.com/molticket/webgate/internal/model"
	"github.com/molticket/webgate/internal/upstream"
)

// AuthHandler serves the login and signup pages and owns session lifecycle.
type AuthHandler struct {
	Pages
	API *upstream.Client
}

func NewAuthHandler(p Pages, api *upstream.Client) *AuthHandler {
	return &AuthHandler{Pages: p, API: api}
}

// landing is the role-based page a user sees right after logging in.
func landing(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "/admin"
	case model.RoleHost:
		return "/host"
	default:
		return "/events"
	}
}

// LoginForm renders the login page; already-authenticated browsers skip it.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess.Authenticated() {
		return c.Redirect(http.StatusSeeOther, landing(sess.Role()))
	}
	return h.render(c, "Log in", "login", nil)
}

// Login exchanges the form credentials upstream and establishes the session.
// Login failures never clear-and-redirect like other 401s: the user is
// already on an auth page, so the error is shown in place.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return h.flashTo(c, "Email and password are required.", "/login")
	}

	res, err := h.API.Login(c.Request().Context(), email, password)
	if err != nil {
		return h.flashTo(c, loginErrorMessage(err), "/login")
	}

	sess := middleware.CurrentSession(c)
	if err := h.Store.Login(c.Request().Context(), sess.ID, res); err != nil {
		log.Printf("persist session: %v", err)
		return h.flashTo(c, "Could not start your session. Please try again.", "/login")
	}
	return c.Redirect(http.StatusSeeOther, landing(res.Role))
}

func loginErrorMessage(err error) string {
	if apiErr, ok := err.(*upstream.APIError); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Login failed. Check your email and password."
}

// SignUpForm renders the user signup page.
func (h *AuthHandler) SignUpForm(c echo.Context) error {
	return h.render(c, "Sign up", "signup", nil)
}

// SignUp registers a regular account and sends the user to the login page.
func (h *AuthHandler) SignUp(c echo.Context) error {
	req := model.SignUpUser{
		Email:       strings.TrimSpace(c.FormValue("email")),
		Password:    c.FormValue("password"),
		Name:        strings.TrimSpace(c.FormValue("name")),
		PhoneNumber: strings.TrimSpace(c.FormValue("phoneNumber")),
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.PhoneNumber == "" {
		return h.flashTo(c, "All fields are required.", "/signup")
	}
	if err := h.API.SignUpUser(c.Request().Context(), req); err != nil {
		return h.failUpstream(c, err, "Sign up failed.", "/signup")
	}
	return h.flashTo(c, "Account created. Please log in.", "/login")
}

// SignUpHostForm renders the host signup page.
func (h *AuthHandler) SignUpHostForm(c echo.Context) error {
	return h.render(c, "Host sign up", "signup_host", nil)
}

// SignUpHost registers a host account, which waits for admin approval.
func (h *AuthHandler) SignUpHost(c echo.Context) error {
	req := model.SignUpHost{
		Email:          strings.TrimSpace(c.FormValue("email")),
		Password:       c.FormValue("password"),
		Name:           strings.TrimSpace(c.FormValue("name")),
		PhoneNumber:    strings.TrimSpace(c.FormValue("phoneNumber")),
		CompanyName:    strings.TrimSpace(c.FormValue("companyName")),
		BusinessNumber: strings.TrimSpace(c.FormValue("businessNumber")),
	}
	if req.Email == "" || req.Password == "" || req.Name == "" ||
		req.PhoneNumber == "" || req.CompanyName == "" || req.BusinessNumber == "" {
		return h.flashTo(c, "All fields are required.", "/signup/host")
	}
	if err := h.API.SignUpHost(c.Request().Context(), req); err != nil {
		return h.failUpstream(c, err, "Host sign up failed.", "/signup/host")
	}
	return h.flashTo(c, "Host request submitted. You can log in once an admin approves it.", "/login")
}

// Logout invalidates the token upstream (best effort) and always clears the
// local session.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess.Authenticated() {
		if err := h.API.Logout(c.Request().Context(), creds(sess)); err != nil {
			log.Printf("upstream logout: %v", err)
		}
	}
	if err := h.Store.Clear(c.Request().Context(), sess.ID); err != nil {
		log.Printf("clear session %s: %v", sess.ID, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
