package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// Authenticator is the identity-provider boundary. Implementations return an
// *AuthError for failures the provider categorized (wrong password, bad
// email, email in use, weak password).
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
}

// Backend error codes, as returned by the Identity Toolkit API.
const (
	AuthCodeEmailExists     = "EMAIL_EXISTS"
	AuthCodeInvalidEmail    = "INVALID_EMAIL"
	AuthCodeWeakPassword    = "WEAK_PASSWORD"
	AuthCodeEmailNotFound   = "EMAIL_NOT_FOUND"
	AuthCodeInvalidPassword = "INVALID_PASSWORD"
	AuthCodeBadCredentials  = "INVALID_LOGIN_CREDENTIALS"
	AuthCodeUserDisabled    = "USER_DISABLED"
	AuthCodeTooManyAttempts = "TOO_MANY_ATTEMPTS_TRY_LATER"
)

// AuthError is a categorized authentication failure.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s", e.Code)
}

// UserMessage is the dialog text shown for this failure.
func (e *AuthError) UserMessage() string {
	switch e.Code {
	case AuthCodeEmailExists:
		return "This email is already registered. Please log in instead."
	case AuthCodeInvalidEmail:
		return "Please enter a valid email address."
	case AuthCodeWeakPassword:
		return "Password is too weak. Please use a stronger password."
	case AuthCodeEmailNotFound, AuthCodeInvalidPassword, AuthCodeBadCredentials:
		return "Incorrect email or password. Please try again."
	case AuthCodeTooManyAttempts:
		return "Too many attempts. Please try again later."
	default:
		return "Authentication failed. Please try again."
	}
}

// AsAuthError unwraps err to an *AuthError if it is one.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuthClient signs users in and up against the Firebase Auth REST
// API using the project's web API key.
type FirebaseAuthClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewFirebaseAuthClient(apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		apiKey:  apiKey,
		baseURL: identityToolkitURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *FirebaseAuthClient) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	return c.call(ctx, "accounts:signUp", email, password)
}

func (c *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	return c.call(ctx, "accounts:signInWithPassword", email, password)
}

func (c *FirebaseAuthClient) call(ctx context.Context, endpoint, email, password string) (*models.User, error) {
	b, err := json.Marshal(authRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth payload: %w", err)
	}

	u := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth response: %w", err)
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse auth JSON: %w", err)
	}

	if resp.StatusCode != http.StatusOK || ar.Error != nil {
		code := "UNKNOWN"
		message := ""
		if ar.Error != nil {
			// Messages arrive as e.g. "WEAK_PASSWORD : Password should be
			// at least 6 characters"; the leading token is the code.
			message = ar.Error.Message
			code = strings.TrimSpace(strings.SplitN(ar.Error.Message, ":", 2)[0])
		}
		return nil, &AuthError{Code: code, Message: message}
	}

	return &models.User{ID: ar.LocalID, Email: ar.Email}, nil
}
