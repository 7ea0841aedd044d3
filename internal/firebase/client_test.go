package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPClient(srv.URL, "test-key")
}

func writeProviderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{"code": 400, "message": message},
	})
}

func TestCreateAccount_Success(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/signupNewUser", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{"localId": "uid-123"})
	})

	uid, err := client.CreateAccount(context.Background(), "a@b.com", "longenough1", "A B")

	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, "A B", gotBody["displayName"])
	assert.Equal(t, true, gotBody["returnSecureToken"])
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, "EMAIL_EXISTS")
	})

	_, err := client.CreateAccount(context.Background(), "a@b.com", "longenough1", "A B")

	require.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "EMAIL_EXISTS")
}

func TestCreateAccount_WeakPassword(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, "WEAK_PASSWORD : Password should be at least 6 characters")
	})

	_, err := client.CreateAccount(context.Background(), "a@b.com", "longenough1", "A B")

	require.ErrorIs(t, err, ErrInvalidCredentialFormat)
	assert.Contains(t, err.Error(), "WEAK_PASSWORD")
}

func TestSignIn_Success(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verifyPassword", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"kind":         "identitytoolkit#VerifyPasswordResponse",
			"localId":      "uid-123",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
			"expiresIn":    "3600",
		})
	})

	session, err := client.SignIn(context.Background(), "a@b.com", "longenough1")

	require.NoError(t, err)
	assert.Equal(t, "uid-123", session.LocalID)
	assert.Equal(t, "id-token", session.IDToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	assert.Equal(t, "3600", session.ExpiresIn)
	assert.Equal(t, "identitytoolkit#VerifyPasswordResponse", session.Kind)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS"} {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeProviderError(w, code)
		})

		_, err := client.SignIn(context.Background(), "a@b.com", "wrongpassword")

		require.ErrorIs(t, err, ErrInvalidCredentials, "code %s", code)
	}
}

func TestDeleteAccount_SendsLocalID(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deleteAccount", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{"kind": "identitytoolkit#DeleteAccountResponse"})
	})

	require.NoError(t, client.DeleteAccount(context.Background(), "uid-123"))
	assert.Equal(t, "uid-123", gotBody["localId"])
}

func TestDeleteAccountByToken_SendsIDToken(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"kind": "identitytoolkit#DeleteAccountResponse"})
	})

	require.NoError(t, client.DeleteAccountByToken(context.Background(), "id-token"))
	assert.Equal(t, "id-token", gotBody["idToken"])
}

func TestLookupAccount_Success(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getAccountInfo", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]string{
				{"localId": "uid-123", "email": "a@b.com", "displayName": "A B"},
			},
		})
	})

	account, err := client.LookupAccount(context.Background(), "id-token")

	require.NoError(t, err)
	assert.Equal(t, "uid-123", account.LocalID)
	assert.Equal(t, "a@b.com", account.Email)
}

func TestLookupAccount_NoUsers(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"users": []interface{}{}})
	})

	_, err := client.LookupAccount(context.Background(), "id-token")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestServerError_IsRemoteUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateAccount(context.Background(), "a@b.com", "longenough1", "A B")

	require.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestTransportFailure_IsRemoteUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewHTTPClient(url, "test-key")

	_, err := client.SignIn(context.Background(), "a@b.com", "longenough1")

	require.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestUnknownProviderCode_IsRemoteUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, "QUOTA_EXCEEDED")
	})

	_, err := client.CreateAccount(context.Background(), "a@b.com", "longenough1", "A B")

	require.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Contains(t, err.Error(), "QUOTA_EXCEEDED")
}
