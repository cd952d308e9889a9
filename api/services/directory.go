package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-user-console/models"
)

// DirectoryClient is a client for the remote users directory. The directory
// exposes GET/POST on its base path and PUT/DELETE on <base>/<id>.
type DirectoryClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// createUserRequest is the body sent on create: the draft fields plus the
// placeholder id chosen by the caller.
type createUserRequest struct {
	models.Draft
	ID models.UserID `json:"id"`
}

// NewDirectoryClient creates a new instance of DirectoryClient. A zero timeout
// leaves requests unbounded.
func NewDirectoryClient(baseURL string, timeout time.Duration) *DirectoryClient {
	return &DirectoryClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ListUsers retrieves the full collection of users.
func (dc *DirectoryClient) ListUsers(ctx context.Context) ([]models.User, error) {
	respBody, _, err := dc.makeRequest(ctx, http.MethodGet, dc.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(respBody, &users); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return users, nil
}

// CreateUser posts a new user and returns the representation the directory
// sent back, which may carry a different id than the one supplied.
func (dc *DirectoryClient) CreateUser(ctx context.Context, provisionalID models.UserID, draft models.Draft) (*models.User, error) {
	body, err := json.Marshal(createUserRequest{Draft: draft, ID: provisionalID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	respBody, _, err := dc.makeRequest(ctx, http.MethodPost, dc.BaseURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &user, nil
}

// UpdateUser replaces the editable fields of the user with the given id.
func (dc *DirectoryClient) UpdateUser(ctx context.Context, id models.UserID, draft models.Draft) (*models.User, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	respBody, _, err := dc.makeRequest(ctx, http.MethodPut, dc.userURL(id), body)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}

	var user models.User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &user, nil
}

// DeleteUser removes the user with the given id. The response body is ignored.
func (dc *DirectoryClient) DeleteUser(ctx context.Context, id models.UserID) error {
	if _, _, err := dc.makeRequest(ctx, http.MethodDelete, dc.userURL(id), nil); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

func (dc *DirectoryClient) userURL(id models.UserID) string {
	return fmt.Sprintf("%s/%s", dc.BaseURL, url.PathEscape(id.String()))
}

// Helper function for making HTTP requests to the directory API.
func (dc *DirectoryClient) makeRequest(ctx context.Context, method, url string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := dc.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, resp.StatusCode, &HTTPError{
			Message: fmt.Sprintf("error response: status %d, body: %s", resp.StatusCode, string(respBody)),
			Status:  resp.StatusCode,
		}
	}

	return respBody, resp.StatusCode, nil
}
