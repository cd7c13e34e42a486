package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wargame/communication"
	"wargame/game"

	"github.com/valyala/fasthttp"
)

var ErrRejected = errors.New("broker rejected the move")

// Client talks to a move broker over HTTP.
type Client struct {
	url     string
	http    *fasthttp.Client
	timeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient returns a client for the broker at url. The URL is used as is for both posting
// and polling.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:     strings.TrimSpace(url),
		http:    &fasthttp.Client{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ communication.Communicator = (*Client)(nil)

func (c *Client) PostMove(ctx context.Context, move game.CoordPair, turn int) error {
	msg := communication.NewMoveMessage(move, turn)
	var env communication.Envelope
	if err := c.do(ctx, fasthttp.MethodPost, msg, &env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", ErrRejected, env.Error)
	}
	return nil
}

// PollMove asks the broker for the latest move. It reports false when the broker holds no
// move or a move for another turn.
func (c *Client) PollMove(ctx context.Context, turn int) (game.CoordPair, bool, error) {
	var env communication.Envelope
	if err := c.do(ctx, fasthttp.MethodGet, nil, &env); err != nil {
		return game.CoordPair{}, false, err
	}
	if !env.Success || env.Data == nil || env.Data.Turn != turn {
		return game.CoordPair{}, false, nil
	}
	return env.Data.Pair(), true, nil
}

func (c *Client) do(ctx context.Context, method string, in any, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.url)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		var env communication.Envelope
		if status < fasthttp.StatusInternalServerError && json.Unmarshal(resp.Body(), &env) == nil && env.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, env.Error)
		}
		return fmt.Errorf("broker error: status=%d body=%s", status, truncate(string(resp.Body()), 256))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	dl := time.Now().Add(c.timeout)
	if ctxDL, ok := ctx.Deadline(); ok && ctxDL.Before(dl) {
		return ctxDL
	}
	return dl
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
