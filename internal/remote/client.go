// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jeranaias/threadline-tui/internal/model"
)

// relationMissingCode is the filter-API error code for a collection the
// schema does not expose. See ErrRelationMissing.
const relationMissingCode = "PGRST116"

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// Service is the backend surface the UI layers consume. *Client implements
// it; tests substitute stubs.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*Session, error)
	SignOut(ctx context.Context) error

	ListConversations(ctx context.Context) ([]model.Conversation, error)
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	DeleteMessages(ctx context.Context, conversationID string) error
	DeleteConversation(ctx context.Context, id string) error
	RenameConversation(ctx context.Context, id, title string) error

	SendMessage(ctx context.Context, content, conversationID string) (*SendResult, error)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend project URL (no trailing slash).
	BaseURL string

	// AnonKey is the public API key sent with every request.
	AnonKey string

	// RelayFunction is the name of the assistant relay function
	// (default: "assistant-relay").
	RelayFunction string

	// Timeout for REST and auth requests (default: 30s). The relay call
	// deliberately uses no per-request deadline: reply generation is slow
	// and the transport's own limits apply.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		RelayFunction: "assistant-relay",
		Timeout:       30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the managed chat backend.
//
// A Client is safe for use from a single Bubble Tea event loop; commands
// resolve concurrently but the session token is only mutated by the auth
// methods, which the UI serializes.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	relayHTTP  *http.Client // no client-side timeout for reply generation

	accessToken string
}

// NewClient creates a client with the given configuration, filling in
// defaults for any zero values.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.RelayFunction == "" {
		config.RelayFunction = "assistant-relay"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		relayHTTP:  &http.Client{},
	}
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// SignIn exchanges email and password for a session token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := authRequest{Email: email, Password: password}

	var resp authResponse
	if err := c.postJSON(ctx, c.config.BaseURL+"/auth/v1/token?grant_type=password", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrUnauthorized
	}

	c.accessToken = resp.AccessToken
	return &Session{
		AccessToken: resp.AccessToken,
		Email:       resp.User.Email,
		Name:        resp.User.displayName(),
	}, nil
}

// SignUp registers a new account, storing the display name in the user
// metadata the way the auth provider expects.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	body := authRequest{
		Email:    email,
		Password: password,
		Data:     map[string]any{"name": name},
	}

	var resp authResponse
	if err := c.postJSON(ctx, c.config.BaseURL+"/auth/v1/signup", body, &resp); err != nil {
		return nil, err
	}

	c.accessToken = resp.AccessToken
	sess := &Session{
		AccessToken: resp.AccessToken,
		Email:       resp.User.Email,
		Name:        resp.User.displayName(),
	}
	if sess.Name == "" {
		sess.Name = name
	}
	return sess, nil
}

// SignOut invalidates the session token server-side and forgets it locally.
// The local token is cleared even when the remote call fails.
func (c *Client) SignOut(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.config.BaseURL+"/auth/v1/logout", nil)
	c.accessToken = ""
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError("sign-out failed", resp)
	}
	return nil
}

// Authenticated reports whether a session token is held.
func (c *Client) Authenticated() bool {
	return c.accessToken != ""
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// ListConversations returns all conversations, most recent first.
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	endpoint := c.config.BaseURL + "/rest/v1/conversations?select=*&order=created_at.desc"

	var records []conversationRecord
	if err := c.getJSON(ctx, endpoint, &records); err != nil {
		return nil, err
	}

	convs := make([]model.Conversation, 0, len(records))
	for _, r := range records {
		convs = append(convs, r.toModel())
	}
	return convs, nil
}

// GetMessages returns a conversation's messages ordered oldest-first.
func (c *Client) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	endpoint := c.config.BaseURL + "/rest/v1/messages?select=*&conversation_id=eq." +
		url.QueryEscape(conversationID) + "&order=created_at.asc"

	var records []messageRecord
	if err := c.getJSON(ctx, endpoint, &records); err != nil {
		return nil, err
	}

	msgs := make([]model.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, r.toModel())
	}
	return msgs, nil
}

// DeleteMessages removes all messages of a conversation. Backends whose
// schema cascades message deletes do not expose the collection at all;
// that case surfaces as ErrRelationMissing and callers may ignore it.
func (c *Client) DeleteMessages(ctx context.Context, conversationID string) error {
	endpoint := c.config.BaseURL + "/rest/v1/messages?conversation_id=eq." +
		url.QueryEscape(conversationID)
	return c.deleteResource(ctx, endpoint, "delete messages failed")
}

// DeleteConversation removes a conversation by id.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	endpoint := c.config.BaseURL + "/rest/v1/conversations?id=eq." + url.QueryEscape(id)
	return c.deleteResource(ctx, endpoint, "delete conversation failed")
}

// RenameConversation updates a conversation's title.
func (c *Client) RenameConversation(ctx context.Context, id, title string) error {
	endpoint := c.config.BaseURL + "/rest/v1/conversations?id=eq." + url.QueryEscape(id)

	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return &RemoteError{Kind: KindInvalidResponse, Message: "failed to marshal rename", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError("rename failed", resp)
	}
	return nil
}

// =============================================================================
// ASSISTANT RELAY
// =============================================================================

// SendMessage relays user text to the assistant. With an empty
// conversationID the backend creates the conversation and returns its id
// alongside the generated reply. One network round trip, one attempt.
func (c *Client) SendMessage(ctx context.Context, content, conversationID string) (*SendResult, error) {
	endpoint := c.config.BaseURL + "/functions/v1/" + c.config.RelayFunction

	payload, err := json.Marshal(sendRequest{Content: content, ConversationID: conversationID})
	if err != nil {
		return nil, &RemoteError{Kind: KindInvalidResponse, Message: "failed to marshal message", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.relayHTTP.Do(req)
	if err != nil {
		return nil, connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, statusError("assistant relay failed", resp)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &RemoteError{Kind: KindInvalidResponse, Message: "failed to decode relay response", Cause: err}
	}

	return &SendResult{
		ConversationID: out.ConversationID,
		Message:        out.Message.toModel(),
	}, nil
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

// newRequest builds a request carrying the API key and, when present, the
// session bearer token.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &RemoteError{Kind: KindConnection, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("apikey", c.config.AnonKey)
	token := c.accessToken
	if token == "" {
		token = c.config.AnonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError("backend query failed", resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Kind: KindInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &RemoteError{Kind: KindInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		detail := readErrorBody(resp)
		return &RemoteError{Kind: KindAuth, Message: authFailureMessage(detail)}
	}
	if resp.StatusCode >= 300 {
		return statusError("auth request failed", resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Kind: KindInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func (c *Client) deleteResource(ctx context.Context, endpoint, failMsg string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		if detail := readErrorBody(resp); detail.Code == relationMissingCode {
			return ErrRelationMissing
		}
		return statusError(failMsg, resp)
	}
	return nil
}

// readErrorBody decodes the filter API's error payload, tolerating bodies
// that are not JSON at all.
func readErrorBody(resp *http.Response) restError {
	var detail restError
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return detail
	}
	json.Unmarshal(data, &detail)
	return detail
}

func authFailureMessage(detail restError) string {
	if detail.Message != "" {
		return detail.Message
	}
	return ErrUnauthorized.Message
}

func connectionError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Kind: KindConnection, Message: "request timed out", Cause: err}
	}
	return &RemoteError{Kind: KindConnection, Message: "backend unreachable", Cause: err}
}

func statusError(msg string, resp *http.Response) error {
	detail := readErrorBody(resp)
	full := msg + ": " + resp.Status
	if detail.Message != "" {
		full = msg + ": " + detail.Message
	}
	return &RemoteError{Kind: KindBadStatus, Message: full}
}
