package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/middleware"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/repository"
	"github.com/noah-isme/skillbridge-web/internal/service"
)

type authenticator interface {
	Register(ctx context.Context, form dto.RegisterForm) (*repository.AuthResult, error)
	Login(ctx context.Context, form dto.LoginForm) (*repository.AuthResult, error)
	Logout(ctx context.Context) (*repository.AuthResult, error)
}

// RegisterData is the body of /register.
type RegisterData struct {
	Form dto.RegisterForm
}

// LoginData is the body of /login.
type LoginData struct {
	Form dto.LoginForm
}

// VerifyData is the body of /verify-email.
type VerifyData struct {
	OK      bool
	Message string
}

// AuthHandler drives registration, sign in and sign out through the auth
// provider and relays its cookies.
type AuthHandler struct {
	auth authenticator
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterForm renders the sign-up page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	role := string(models.RoleStudent)
	if c.Query("role") == string(models.RoleTutor) {
		role = string(models.RoleTutor)
	}
	render(c, http.StatusOK, "register", "Create an account", RegisterData{Form: dto.RegisterForm{Role: role}})
}

// Register creates the account. Failures keep the visitor on the form with
// the submitted values, minus the passwords.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	_ = c.ShouldBind(&form)

	result, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		failureNow(c, err, "Registration failed")
		form.Password, form.ConfirmPassword = "", ""
		render(c, http.StatusUnprocessableEntity, "register", "Create an account", RegisterData{Form: form})
		return
	}
	relayCookies(c, result.Cookies)
	success(c, "Registration successful! Please check your email to verify your account.")
	redirect(c, "/login")
}

// LoginForm renders the sign-in page, or sends signed-in users home.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if state := middleware.SessionFrom(c); state.SignedIn() {
		redirect(c, service.HomeFor(state.Role()))
		return
	}
	render(c, http.StatusOK, "login", "Sign in", LoginData{})
}

// Login signs in and lands the user on the home page of their role.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	_ = c.ShouldBind(&form)

	result, err := h.auth.Login(c.Request.Context(), form)
	if err != nil {
		failureNow(c, err, "Invalid email or password")
		form.Password = ""
		render(c, http.StatusUnprocessableEntity, "login", "Sign in", LoginData{Form: form})
		return
	}
	relayCookies(c, result.Cookies)
	success(c, "Login successful!")

	var role models.UserRole
	if result.User != nil {
		role = result.User.Role
	}
	redirect(c, service.HomeFor(role))
}

// Logout ends the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	result, err := h.auth.Logout(c.Request.Context())
	if err != nil {
		failure(c, err, "Failed to sign out")
		redirect(c, "/")
		return
	}
	relayCookies(c, result.Cookies)
	success(c, "Logged out successfully")
	redirect(c, "/")
}

// VerifyEmail shows the outcome of the verification link the auth provider
// redirected to.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	data := VerifyData{OK: true, Message: "Email verified successfully! You can now log in."}
	switch c.Query("error") {
	case "":
	case "invalid_token":
		data = VerifyData{Message: "Invalid or expired verification link. Please request a new one."}
	default:
		data = VerifyData{Message: "Verification failed. Please try again."}
	}
	render(c, http.StatusOK, "verify_email", "Email verification", data)
}
