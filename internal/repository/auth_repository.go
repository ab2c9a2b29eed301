package repository

import (
	"context"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// SignUpInput is the body of POST /sign-up/email.
type SignUpInput struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        models.UserRole `json:"role,omitempty"`
	CallbackURL string          `json:"callbackURL,omitempty"`
}

// SignInInput is the body of POST /sign-in/email.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries the signed-in user and the raw Set-Cookie values issued
// by the auth provider.
type AuthResult struct {
	User    *models.SessionUser
	Cookies []string
}

// AuthRepository talks to the auth provider mounted at /api/auth.
type AuthRepository struct {
	client *apiclient.Client
}

// NewAuthRepository expects a client rooted at the auth base path.
func NewAuthRepository(client *apiclient.Client) *AuthRepository {
	return &AuthRepository{client: client}
}

type authPayload struct {
	User *models.SessionUser `json:"user"`
}

func (r *AuthRepository) SignUpEmail(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	var out authPayload
	resp, err := r.client.Post(ctx, "/sign-up/email", input, &out)
	return authResult(resp, out, err)
}

func (r *AuthRepository) SignInEmail(ctx context.Context, input SignInInput) (*AuthResult, error) {
	var out authPayload
	resp, err := r.client.Post(ctx, "/sign-in/email", input, &out)
	return authResult(resp, out, err)
}

// SignOut ends the session identified by the forwarded cookies.
func (r *AuthRepository) SignOut(ctx context.Context) (*AuthResult, error) {
	resp, err := r.client.Post(ctx, "/sign-out", struct{}{}, nil)
	return authResult(resp, authPayload{}, err)
}

// GetSession returns nil without error when nobody is signed in.
func (r *AuthRepository) GetSession(ctx context.Context) (*models.Session, error) {
	var out *models.Session
	if _, err := r.client.Get(ctx, "/get-session", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func authResult(resp *apiclient.Response, out authPayload, err error) (*AuthResult, error) {
	if err != nil {
		return nil, err
	}
	result := &AuthResult{User: out.User}
	if resp != nil {
		result.Cookies = resp.Header.Values("Set-Cookie")
	}
	return result, nil
}
