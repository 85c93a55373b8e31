// Package gateway implements platform.Platform against the chain gateway:
// posts arrive over the gateway's Kafka topic and write operations go
// through its HTTP API, authenticated with the bot's posting key.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jacksonkontny/goodvibes/internal/models"
	"github.com/jacksonkontny/goodvibes/internal/platform"
	"github.com/jacksonkontny/goodvibes/internal/platform/kafkastream"
)

type Config struct {
	BaseURL    string
	PostingKey string
	Stream     kafkastream.Config
}

type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) StreamPosts(_ context.Context) (platform.Stream, error) {
	stream, err := kafkastream.New(c.cfg.Stream)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

type replyRequest struct {
	TargetID string `json:"target_id"`
	Author   string `json:"author"`
	Body     string `json:"body"`
	Title    string `json:"title"`
}

func (c *Client) Reply(ctx context.Context, target models.Post, author, body, title string) error {
	return c.post(ctx, "/replies", replyRequest{
		TargetID: target.ID,
		Author:   author,
		Body:     body,
		Title:    title,
	}, nil)
}

type upvoteRequest struct {
	TargetID string `json:"target_id"`
	Voter    string `json:"voter"`
}

func (c *Client) Upvote(ctx context.Context, target models.Post, voter string) error {
	return c.post(ctx, "/votes", upvoteRequest{TargetID: target.ID, Voter: voter}, nil)
}

type publishRequest struct {
	Author string   `json:"author"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
}

func (c *Client) Publish(ctx context.Context, author, title, body string, tags []string) error {
	return c.post(ctx, "/posts", publishRequest{
		Author: author,
		Title:  title,
		Body:   body,
		Tags:   tags,
	}, nil)
}

func (c *Client) Refresh(ctx context.Context, post models.Post) (models.Post, error) {
	var refreshed models.Post
	if err := c.get(ctx, "/posts/"+post.ID, &refreshed); err != nil {
		return models.Post{}, err
	}
	return refreshed, nil
}

func (c *Client) Replies(ctx context.Context, post models.Post) ([]models.Post, error) {
	var replies []models.Post
	if err := c.get(ctx, "/posts/"+post.ID+"/replies", &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("[Gateway] failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("[Gateway] failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("[Gateway] failed to create request: %w", err)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Key "+c.cfg.PostingKey)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", platform.ErrTransient, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", platform.ErrPostGone, req.URL.Path)
	case http.StatusTooManyRequests:
		slog.Warn("[Gateway] Rate limited", slog.String("path", req.URL.Path))
		return fmt.Errorf("%w: rate limited on %s", platform.ErrTransient, req.URL.Path)
	default:
		return fmt.Errorf("%w: unexpected status %d on %s",
			platform.ErrTransient, res.StatusCode, req.URL.Path)
	}

	if out == nil {
		return nil
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", platform.ErrTransient, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("[Gateway] failed to parse response: %w", err)
	}
	return nil
}
