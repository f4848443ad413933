// Package client is a Go client for the todoapp HTTP API. It keeps a small
// keyed cache of query results: reads serve from cache until a mutation
// invalidates the key, at which point the next read refetches. There is no
// optimistic patching; the cache always reflects the last successful server
// read.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"sync"

	"todoapp/internal/models"
)

// ErrNotAuthenticated signals a 401: the caller should show the anonymous
// view, not an error banner.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is any non-401 failure response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Account is the public identity returned by register/login.
type Account struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

const todosCacheKey = "todos"

// Client talks to the API. The session cookie is handled by the jar, so a
// login on this client authenticates every later call.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	cache map[string][]models.Todo // key present = fresh
}

// New builds a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
		cache:   make(map[string][]models.Todo),
	}, nil
}

// Register creates an account and establishes a session.
func (c *Client) Register(ctx context.Context, email, password string) (Account, error) {
	var acct Account
	err := c.doJSON(ctx, http.MethodPost, "/api/register", credentials{email, password}, &acct)
	if err != nil {
		return Account{}, err
	}
	c.clearCache() // auth state changed
	return acct, nil
}

// Login authenticates and establishes a session. The whole cache is cleared:
// cached results belong to the previous identity.
func (c *Client) Login(ctx context.Context, email, password string) (Account, error) {
	var acct Account
	err := c.doJSON(ctx, http.MethodPost, "/api/login", credentials{email, password}, &acct)
	if err != nil {
		return Account{}, err
	}
	c.clearCache()
	return acct, nil
}

// Logout destroys the session and clears the cache.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.clearCache()
	return nil
}

// Todos returns the todo list, served from cache when fresh.
func (c *Client) Todos(ctx context.Context) ([]models.Todo, error) {
	c.mu.Lock()
	if todos, ok := c.cache[todosCacheKey]; ok {
		c.mu.Unlock()
		return todos, nil
	}
	c.mu.Unlock()

	var todos []models.Todo
	if err := c.doJSON(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[todosCacheKey] = todos
	c.mu.Unlock()
	return todos, nil
}

// Add creates a todo and invalidates the list cache.
func (c *Client) Add(ctx context.Context, text string) (models.Todo, error) {
	var todo models.Todo
	err := c.doJSON(ctx, http.MethodPost, "/api/todos", map[string]string{"text": text}, &todo)
	if err != nil {
		return models.Todo{}, err
	}
	c.invalidate(todosCacheKey)
	return todo, nil
}

// SetCompleted patches the completed flag and invalidates the list cache.
func (c *Client) SetCompleted(ctx context.Context, id int, completed bool) (models.Todo, error) {
	var todo models.Todo
	path := "/api/todos/" + strconv.Itoa(id)
	err := c.doJSON(ctx, http.MethodPatch, path, map[string]bool{"completed": completed}, &todo)
	if err != nil {
		return models.Todo{}, err
	}
	c.invalidate(todosCacheKey)
	return todo, nil
}

// Delete removes a todo and invalidates the list cache. Deleting an absent
// id succeeds; the server treats it as a no-op.
func (c *Client) Delete(ctx context.Context, id int) error {
	path := "/api/todos/" + strconv.Itoa(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.invalidate(todosCacheKey)
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}

func (c *Client) clearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string][]models.Todo)
}

// doJSON issues one request and decodes the JSON response into out (when out
// is non-nil and the response has a body). 401 maps to ErrNotAuthenticated;
// other failures map to *APIError with the server's {error} message.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrNotAuthenticated
	case resp.StatusCode >= 400:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
