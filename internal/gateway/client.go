package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atas-gateway/internal/minutes"
)

// Client is the thin wrapper around the external backend API. It attaches bearer
// credentials and normalizes the backend's {success, data|error, message}
// envelope; it performs no authorization decisions of its own.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Error is a normalized backend failure: the HTTP status plus the message pulled
// from the envelope (or a generic one when the envelope carried none).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response (status %d)", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("http error, status %d", resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

/* ===================== AUTHENTICATION ===================== */

// User is the backend's profile shape. Owned by the session store; nothing else
// mutates it except through the store's update operation.
type User struct {
	ID          string          `json:"id"`
	Login       string          `json:"login"`
	CNPJ        string          `json:"cnpj,omitempty"`
	AccessLevel string          `json:"accessLevel"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Stats       json.RawMessage `json:"stats,omitempty"`
}

// LoginResult is the issued session: the signed token plus the profile stub.
type LoginResult struct {
	Token       string `json:"token"`
	AccessLevel string `json:"accessLevel"`
	User        User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, login, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{
		"login":    login,
		"password": password,
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

// RegisterResult is the outcome of a company signup.
type RegisterResult struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, cnpj, password string) (RegisterResult, error) {
	var res RegisterResult
	err := c.do(ctx, http.MethodPost, "/register", "", map[string]string{
		"cnpj":     cnpj,
		"password": password,
	}, &res)
	if err != nil {
		return RegisterResult{}, err
	}
	if res.Message == "" {
		res.Message = "Cadastro realizado com sucesso"
	}
	return res, nil
}

// CurrentUser exchanges a bearer token for the full profile. A rejection here is
// how stale or tampered sessions are detected.
func (c *Client) CurrentUser(ctx context.Context, bearer string) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user", bearer, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

/* ===================== MEETING MINUTES ===================== */

func (c *Client) MeetingMinutes(ctx context.Context, bearer string, f minutes.Filters) (minutes.Page, error) {
	path := "/meeting-minutes"
	if q := f.Query().Encode(); q != "" {
		path += "?" + q
	}
	var page minutes.Page
	if err := c.do(ctx, http.MethodGet, path, bearer, nil, &page); err != nil {
		return minutes.Page{}, err
	}
	return page, nil
}

func (c *Client) MeetingMinute(ctx context.Context, bearer, id string) (minutes.MeetingMinute, error) {
	var m minutes.MeetingMinute
	if err := c.do(ctx, http.MethodGet, "/meeting-minutes/"+id, bearer, nil, &m); err != nil {
		return minutes.MeetingMinute{}, err
	}
	return m, nil
}

func (c *Client) UpdateMeetingMinute(ctx context.Context, bearer, id string, upd minutes.Update) (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, "/meeting-minutes/"+id, bearer, upd, &res); err != nil {
		return "", err
	}
	if res.Message == "" {
		res.Message = "Ata atualizada com sucesso"
	}
	return res.Message, nil
}

// AuthenticateMeetingMinute asks the backend to anchor the document and returns
// the blockchain transaction ID.
func (c *Client) AuthenticateMeetingMinute(ctx context.Context, bearer, id string) (string, error) {
	var res struct {
		BlockchainTxID string `json:"blockchainTxId"`
	}
	if err := c.do(ctx, http.MethodPost, "/meeting-minutes/"+id+"/authenticate", bearer, nil, &res); err != nil {
		return "", err
	}
	return res.BlockchainTxID, nil
}

func (c *Client) AddComment(ctx context.Context, bearer, id, comment string) (minutes.CommentsResult, error) {
	var res minutes.CommentsResult
	err := c.do(ctx, http.MethodPost, "/meeting-minutes/"+id+"/comments", bearer, map[string]string{
		"comment": comment,
	}, &res)
	if err != nil {
		return minutes.CommentsResult{}, err
	}
	return res, nil
}

func (c *Client) MeetingMinutesByClient(ctx context.Context, bearer, cnpj string) (minutes.ClientPage, error) {
	var page minutes.ClientPage
	if err := c.do(ctx, http.MethodGet, "/meeting-minutes/client/"+cnpj, bearer, nil, &page); err != nil {
		return minutes.ClientPage{}, err
	}
	return page, nil
}
