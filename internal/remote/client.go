package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultDecisionTimeout bounds choose requests; notifications get
	// the much shorter DefaultNotificationTimeout and are best-effort.
	DefaultDecisionTimeout     = 30 * time.Second
	DefaultNotificationTimeout = 5 * time.Second
)

// Client talks to a remote bot server over the HTTP+JSON bot API.
type Client struct {
	baseURL             string
	http                *http.Client
	decisionTimeout     time.Duration
	notificationTimeout time.Duration
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithDecisionTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.decisionTimeout = d }
}

func WithNotificationTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.notificationTimeout = d }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:             strings.TrimRight(baseURL, "/"),
		http:                &http.Client{},
		decisionTimeout:     DefaultDecisionTimeout,
		notificationTimeout: DefaultNotificationTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) post(ctx context.Context, path string, timeout time.Duration, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("POST %s: status %d: %s", path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

// CreateSession registers a bot session for one seat of a match and
// returns the remote session id.
func (c *Client) CreateSession(ctx context.Context, position PlayerPosition, matchID string) (string, error) {
	var resp SessionResponse
	err := c.post(ctx, "/api/sessions", c.decisionTimeout, SessionRequest{Position: position, MatchID: matchID}, &resp)
	if err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", errors.New("remote bot returned empty session id")
	}
	return resp.SessionID, nil
}

// DestroySession tears the remote session down, best-effort.
func (c *Client) DestroySession(ctx context.Context, sessionID string) {
	ctx, cancel := context.WithTimeout(ctx, c.notificationTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return
	}
	if resp, err := c.http.Do(req); err == nil {
		resp.Body.Close()
	}
}

func (c *Client) ChooseCut(ctx context.Context, sessionID string, reqCtx ChooseCutContext) (CutResult, error) {
	var out CutResult
	path := fmt.Sprintf("/api/sessions/%s/choose-cut", sessionID)
	err := c.post(ctx, path, c.decisionTimeout, reqCtx, &out)
	return out, err
}

func (c *Client) ChooseNegotiationAction(ctx context.Context, sessionID string, reqCtx ChooseNegotiationActionContext) (NegotiationActionChoice, error) {
	var out NegotiationActionChoice
	path := fmt.Sprintf("/api/sessions/%s/choose-negotiation-action", sessionID)
	err := c.post(ctx, path, c.decisionTimeout, reqCtx, &out)
	return out, err
}

func (c *Client) ChooseCard(ctx context.Context, sessionID string, reqCtx ChooseCardContext) (Card, error) {
	var out Card
	path := fmt.Sprintf("/api/sessions/%s/choose-card", sessionID)
	err := c.post(ctx, path, c.decisionTimeout, reqCtx, &out)
	return out, err
}

// notify fires an observation hook. Failures are returned for logging
// but carry no game consequence.
func (c *Client) notify(ctx context.Context, sessionID, hook string, body any) error {
	path := fmt.Sprintf("/api/sessions/%s/notify/%s", sessionID, hook)
	return c.post(ctx, path, c.notificationTimeout, body, nil)
}

func (c *Client) NotifyDealStarted(ctx context.Context, sessionID string, body DealStartedContext) error {
	return c.notify(ctx, sessionID, "deal-started", body)
}

func (c *Client) NotifyCardPlayed(ctx context.Context, sessionID string, body CardPlayedContext) error {
	return c.notify(ctx, sessionID, "card-played", body)
}

func (c *Client) NotifyTrickCompleted(ctx context.Context, sessionID string, body TrickCompletedContext) error {
	return c.notify(ctx, sessionID, "trick-completed", body)
}

func (c *Client) NotifyDealEnded(ctx context.Context, sessionID string, body DealEndedContext) error {
	return c.notify(ctx, sessionID, "deal-ended", body)
}

func (c *Client) NotifyMatchEnded(ctx context.Context, sessionID string, body MatchEndedContext) error {
	return c.notify(ctx, sessionID, "match-ended", body)
}
