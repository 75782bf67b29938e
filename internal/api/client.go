// Package api wraps the RAG Explorer backend HTTP API consumed by the
// dashboard pages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// domainCacheTTL bounds how long a cached domain listing is served.
const domainCacheTTL = 30 * time.Second

// Client talks to the RAG Explorer backend. All methods take a context and
// return wrapped errors; nothing here retries.
type Client struct {
	base string
	http *http.Client

	mu          sync.Mutex
	domainCache map[uint64]cachedDomains
}

type cachedDomains struct {
	domains []Domain
	at      time.Time
}

// NewClient returns a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:        baseURL,
		http:        &http.Client{Timeout: timeout},
		domainCache: make(map[uint64]cachedDomains),
	}
}

// Health is the backend's basic health check response.
type Health struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Domain is a knowledge domain documents are grouped under.
type Domain struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DocumentCount int    `json:"document_count"`
}

type domainListResponse struct {
	Domains []Domain `json:"domains"`
	Total   int      `json:"total"`
}

// SearchResult is one retrieved chunk.
type SearchResult struct {
	ChunkID         string  `json:"chunk_id"`
	DocumentID      string  `json:"document_id"`
	DocumentName    string  `json:"document_name"`
	DomainID        string  `json:"domain_id"`
	DomainName      string  `json:"domain_name"`
	Content         string  `json:"content"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
}

type searchRequest struct {
	Query     string  `json:"query"`
	DomainID  string  `json:"domain_id,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

type searchResponse struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
	ResponseTime float64        `json:"response_time"`
}

// ChatMessage is one message in a chat thread.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatMessageRequest struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// Health checks the backend's basic health endpoint.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.get(ctx, "/api/v1/health", &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

// Search runs a semantic search, optionally scoped to a domain.
func (c *Client) Search(ctx context.Context, query, domainID string, limit int) ([]SearchResult, error) {
	req := searchRequest{Query: query, DomainID: domainID, Limit: limit}
	var resp searchResponse
	if err := c.post(ctx, "/api/v1/search/semantic", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListDomains fetches the domain listing. Results are cached briefly, keyed
// by a hash of the request path, so page switches do not hammer the
// backend.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	key := xxhash.Sum64String(c.base + "/api/v1/domains/")

	c.mu.Lock()
	if cached, ok := c.domainCache[key]; ok && time.Since(cached.at) < domainCacheTTL {
		domains := cached.domains
		c.mu.Unlock()
		return domains, nil
	}
	c.mu.Unlock()

	var resp domainListResponse
	if err := c.get(ctx, "/api/v1/domains/", &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.domainCache[key] = cachedDomains{domains: resp.Domains, at: time.Now()}
	c.mu.Unlock()
	return resp.Domains, nil
}

// InvalidateDomains drops the cached domain listing.
func (c *Client) InvalidateDomains() {
	c.mu.Lock()
	c.domainCache = make(map[uint64]cachedDomains)
	c.mu.Unlock()
}

// SendChat posts a user message to a chat thread and returns the stored
// message.
func (c *Client) SendChat(ctx context.Context, chatID, content string) (ChatMessage, error) {
	req := chatMessageRequest{Content: content, Role: "user"}
	var msg ChatMessage
	path := fmt.Sprintf("/api/v1/chats/%s/messages", chatID)
	if err := c.post(ctx, path, req, &msg); err != nil {
		return ChatMessage{}, err
	}
	return msg, nil
}

// ChatMessages fetches the messages of a chat thread.
func (c *Client) ChatMessages(ctx context.Context, chatID string) ([]ChatMessage, error) {
	var msgs []ChatMessage
	path := fmt.Sprintf("/api/v1/chats/%s/messages", chatID)
	if err := c.get(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method: req.Method,
			Path:   req.URL.Path,
			Code:   resp.StatusCode,
			Body:   string(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.Code)
}
