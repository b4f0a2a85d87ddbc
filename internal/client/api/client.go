// Package api is the typed HTTP client for the crewdeck backend. All
// outbound calls go through Transport so the bearer header and the
// 401-forces-logout rule apply uniformly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/crewdeck/crewdeck/internal/auth"
	"github.com/crewdeck/crewdeck/internal/client/session"
	employeeentity "github.com/crewdeck/crewdeck/internal/employee/entity"
	"github.com/crewdeck/crewdeck/internal/quiz"
	"github.com/crewdeck/crewdeck/internal/technology"
	userentity "github.com/crewdeck/crewdeck/internal/user/entity"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

// New builds a client whose transport intercepts every call. onUnauthorized
// runs whenever any response comes back 401, after the session has been
// cleared; the shell uses it to redirect to the login view.
func New(baseURL string, sess *session.Session, onUnauthorized func()) *Client {
	return &Client{
		baseURL: baseURL,
		session: sess,
		http: &http.Client{
			Transport: &Transport{Session: sess, OnUnauthorized: onUnauthorized},
		},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    userentity.Summary `json:"user"`
}

// Register creates an account and, when this is still the latest auth
// attempt, stores the issued token in the session.
func (c *Client) Register(ctx context.Context, email, password string) error {
	attempt := c.session.BeginAttempt()
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	_, err := c.session.CompleteAttempt(attempt, resp.Token)
	return err
}

// Login authenticates and stores the fresh token, unless a newer attempt
// has been started since.
func (c *Client) Login(ctx context.Context, email, password string) (userentity.Summary, error) {
	attempt := c.session.BeginAttempt()
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return userentity.Summary{}, err
	}
	if _, err := c.session.CompleteAttempt(attempt, resp.Token); err != nil {
		return resp.User, err
	}
	return resp.User, nil
}

// Verify asks the server to confirm the stored token.
func (c *Client) Verify(ctx context.Context) (auth.Identity, error) {
	var resp struct {
		Message string        `json:"message"`
		User    auth.Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return auth.Identity{}, err
	}
	return resp.User, nil
}

// Logout clears local state only; the token stays valid at the server
// until natural expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Employees(ctx context.Context) ([]*employeeentity.Employee, error) {
	var out []*employeeentity.Employee
	err := c.do(ctx, http.MethodGet, "/api/employees", nil, &out)
	return out, err
}

func (c *Client) Employee(ctx context.Context, id string) (*employeeentity.Employee, error) {
	var out employeeentity.Employee
	err := c.do(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(id), nil, &out)
	return &out, err
}

func (c *Client) CreateEmployee(ctx context.Context, e *employeeentity.Employee) (*employeeentity.Employee, error) {
	var out employeeentity.Employee
	err := c.do(ctx, http.MethodPost, "/api/employees", e, &out)
	return &out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, e *employeeentity.Employee) (*employeeentity.Employee, error) {
	var out employeeentity.Employee
	err := c.do(ctx, http.MethodPut, "/api/employees/"+url.PathEscape(e.ID), e, &out)
	return &out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Quizzes(ctx context.Context) ([]*quiz.Quiz, error) {
	var out []*quiz.Quiz
	err := c.do(ctx, http.MethodGet, "/api/quizzes", nil, &out)
	return out, err
}

func (c *Client) Technologies(ctx context.Context) ([]technology.Name, error) {
	var out []technology.Name
	err := c.do(ctx, http.MethodGet, "/api/technologies", nil, &out)
	return out, err
}

func (c *Client) QuestionsFor(ctx context.Context, name string) (*technology.Topic, error) {
	var out technology.Topic
	err := c.do(ctx, http.MethodGet, "/api/technologies/"+url.PathEscape(name), nil, &out)
	return &out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	message := envelope.Message
	if message == "" {
		message = envelope.Msg
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}
