package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User is a user record as returned by the listing endpoint.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedUser is the user-creation echo response, which carries no id.
type CreatedUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a task record with its owner denormalized.
type Task struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	User        User   `json:"user"`
}

// APIError is a non-200 response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client issues requests against the task tracker API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the given base URL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, name, email string) (*CreatedUser, error) {
	body := map[string]string{"name": name, "email": email}
	var created CreatedUser
	if err := c.do(ctx, http.MethodPost, "/users/", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateTask creates a task owned by userID.
func (c *Client) CreateTask(ctx context.Context, title, description string, userID uint) (*Task, error) {
	body := map[string]interface{}{
		"title":       title,
		"description": description,
		"user_id":     userID,
	}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus sets the task's status from a numeric code.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID uint, statusCode int) (*Task, error) {
	body := map[string]int{"status": statusCode}
	var task Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns all tasks with their owners.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Detail = errBody.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
