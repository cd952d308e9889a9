package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EO-DataHub/eodhp-user-console/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	mockResponse := `[{"id": 1, "name": "Leanne", "email": "a@b.com", "phone": "1", "website": "x.com", "username": "Bret"},
		{"id": 2, "name": "Ervin", "email": "c@d.com", "phone": "2", "website": "y.com"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL+"/users", 0)
	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.User{ID: "1", Name: "Leanne", Email: "a@b.com", Phone: "1", Website: "x.com"}, users[0])
	assert.Equal(t, models.UserID("2"), users[1].ID)
}

func TestListUsers_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL, 0)
	users, err := client.ListUsers(context.Background())
	assert.Nil(t, users)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Contains(t, httpErr.Message, "boom")
}

func TestListUsers_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewDirectoryClient(url, 0)
	_, err := client.ListUsers(context.Background())
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id": "tmp-1", "name": "New", "email": "n@e.com", "phone": "", "website": ""}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 11, "name": "New", "email": "n@e.com", "phone": "", "website": ""}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL+"/users/", 0)
	user, err := client.CreateUser(context.Background(), "tmp-1", models.Draft{Name: "New", Email: "n@e.com"})
	require.NoError(t, err)
	assert.Equal(t, models.UserID("11"), user.ID)
	assert.Equal(t, "New", user.Name)
}

func TestUpdateUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/1", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name": "Changed", "email": "a@b.com", "phone": "1", "website": "x.com"}`, string(body))

		_, _ = w.Write([]byte(`{"id": 1, "name": "Changed", "email": "a@b.com", "phone": "1", "website": "x.com"}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL+"/users", 0)
	user, err := client.UpdateUser(context.Background(), "1", models.Draft{Name: "Changed", Email: "a@b.com", Phone: "1", Website: "x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "1", Name: "Changed", Email: "a@b.com", Phone: "1", Website: "x.com"}, *user)
}

func TestUpdateUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL, 0)
	_, err := client.UpdateUser(context.Background(), "404", models.Draft{Name: "x"})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestDeleteUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/a%2Fb", r.URL.EscapedPath())
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL+"/users", 0)
	err := client.DeleteUser(context.Background(), "a/b")
	assert.NoError(t, err)
}

func TestDeleteUser_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewDirectoryClient(server.URL, 0)
	err := client.DeleteUser(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
