// Package api is the HTTP client for the dogshelter API. It keeps the
// session cookie in a cookie jar and turns error envelopes into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogshelter/internal/server/models"
)

var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx reply carrying the server's message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == http.StatusUnauthorized
}

type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{base: u, http: &http.Client{Jar: jar, Timeout: timeout}}, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*models.User, error) {
	var out struct {
		NewUser *models.User `json:"newUser"`
	}
	err := c.do(ctx, http.MethodPost, "/user/register", nil, credentials{username, password}, &out)
	return out.NewUser, err
}

// Login sends the credentials in the body of a GET, as the server expects.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/user/login", nil, credentials{username, password}, &out)
	return out.User, err
}

// Logout forgets the session cookie. The server keeps no session state.
func (c *Client) Logout() {
	jar, err := cookiejar.New(nil)
	if err == nil {
		c.http.Jar = jar
	}
}

// ListDogs returns one page of the caller's registered dogs. adopted is
// "true", "false" or empty for all.
func (c *Client) ListDogs(ctx context.Context, adopted string, page int) ([]*models.Dog, error) {
	q := url.Values{}
	q.Set("p", strconv.Itoa(page))
	if adopted != "" {
		q.Set("adopted", adopted)
	}

	var out struct {
		Dogs []*models.Dog `json:"dogs"`
	}
	err := c.do(ctx, http.MethodGet, "/dog/register", q, nil, &out)
	return out.Dogs, err
}

func (c *Client) AddDog(ctx context.Context, name, description string) (*models.NewDog, error) {
	body := map[string]string{"name": name, "description": description}

	var out struct {
		NewDog *models.NewDog `json:"newDog"`
	}
	err := c.do(ctx, http.MethodPost, "/dog/register", nil, body, &out)
	return out.NewDog, err
}

func (c *Client) Adopt(ctx context.Context, id, thankYouMsg string) (*models.Dog, error) {
	body := map[string]string{"thank_you_msg": thankYouMsg}

	var out struct {
		UpdatedDog *models.Dog `json:"updatedDog"`
	}
	err := c.do(ctx, http.MethodPut, "/dog/adopt/"+url.PathEscape(id), nil, body, &out)
	return out.UpdatedDog, err
}

// ListAdopted returns one page of the dogs the caller adopted.
func (c *Client) ListAdopted(ctx context.Context, page int) ([]*models.Dog, error) {
	q := url.Values{}
	q.Set("p", strconv.Itoa(page))

	var out struct {
		Dogs []*models.Dog `json:"dogs"`
	}
	err := c.do(ctx, http.MethodGet, "/dog/adopt", q, nil, &out)
	return out.Dogs, err
}

func (c *Client) Remove(ctx context.Context, id string) (*models.DeleteReceipt, error) {
	var out struct {
		DogRemoved *models.DeleteReceipt `json:"dogRemoved"`
	}
	err := c.do(ctx, http.MethodDelete, "/dog/remove/"+url.PathEscape(id), nil, nil, &out)
	return out.DogRemoved, err
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Error.Message == "" {
			return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(http.StatusText(resp.StatusCode))}
		}
		return &Error{Status: resp.StatusCode, Message: env.Error.Message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
