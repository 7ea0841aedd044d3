package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/identitytoolkit/v3/relyingparty"

// Client is the sole point of contact with the identity provider. Every call
// is a single network round trip; no retries, and any failure is final for
// that request.
type Client interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
	SignIn(ctx context.Context, email, password string) (*Session, error)
	DeleteAccountByToken(ctx context.Context, idToken string) error
	LookupAccount(ctx context.Context, idToken string) (*Account, error)
}

// Session is the token bundle issued on a successful password sign-in.
type Session struct {
	Kind         string `json:"kind"`
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// Account is the provider's view of an existing account, as returned by
// a token lookup.
type Account struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewHTTPClientFromEnv reads FIREBASE_API_KEY and the optional
// FIREBASE_AUTH_URL override.
func NewHTTPClientFromEnv() (*HTTPClient, error) {
	apiKey := os.Getenv("FIREBASE_API_KEY")

	if apiKey == "" {
		return nil, fmt.Errorf("FIREBASE_API_KEY environment variable is not set")
	}

	return NewHTTPClient(os.Getenv("FIREBASE_AUTH_URL"), apiKey), nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"emailVerified":     true,
		"returnSecureToken": true,
	}

	var out struct {
		LocalID string `json:"localId"`
	}

	if err := c.post(ctx, "signupNewUser", body, &out); err != nil {
		return "", err
	}

	return out.LocalID, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, uid string) error {
	return c.post(ctx, "deleteAccount", map[string]interface{}{"localId": uid}, nil)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var session Session

	if err := c.post(ctx, "verifyPassword", body, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (c *HTTPClient) DeleteAccountByToken(ctx context.Context, idToken string) error {
	return c.post(ctx, "deleteAccount", map[string]interface{}{"idToken": idToken}, nil)
}

func (c *HTTPClient) LookupAccount(ctx context.Context, idToken string) (*Account, error) {
	var out struct {
		Users []Account `json:"users"`
	}

	if err := c.post(ctx, "getAccountInfo", map[string]interface{}{"idToken": idToken}, &out); err != nil {
		return nil, err
	}

	if len(out.Users) == 0 {
		return nil, fmt.Errorf("%w: no account for token", ErrNotFound)
	}

	return &out.Users[0], nil
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)

	if err != nil {
		return fmt.Errorf("encoding %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))

	if err != nil {
		return fmt.Errorf("building %s request: %w", endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)

	if err != nil {
		// Transport failures and timeouts look the same to callers.
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: provider returned %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("%w: provider returned %d", ErrRemoteUnavailable, resp.StatusCode)
		}

		return mapProviderError(apiErr.Error.Message)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", ErrRemoteUnavailable, endpoint, err)
	}

	return nil
}

// mapProviderError folds the provider's message codes into the closed error
// set, keeping the original text for the caller-facing message.
func mapProviderError(message string) error {
	// Messages may carry a detail suffix, e.g. "WEAK_PASSWORD : ...".
	code := message

	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}

	switch code {
	case "EMAIL_EXISTS":
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, message)
	case "INVALID_EMAIL", "WEAK_PASSWORD", "MISSING_PASSWORD", "MISSING_EMAIL":
		return fmt.Errorf("%w: %s", ErrInvalidCredentialFormat, message)
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, message)
	case "USER_NOT_FOUND", "INVALID_ID_TOKEN", "TOKEN_EXPIRED":
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, message)
	}
}
