// Package backend is the HTTP client for the code analysis service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ziadkadry99/codeviz/internal/graph"
)

// Client talks to the analysis backend. Requests are one-shot: there are no
// retries and no timeout unless one is configured.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is
// ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout. The timeout is
// set on a copy, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		var hc http.Client
		if c.client != nil {
			hc = *c.client
		}
		hc.Timeout = d
		c.client = &hc
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Analyze submits an uploaded folder listing or a local directory path.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*graph.Graph, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp response
	if err := c.post(ctx, PathAnalyze, req, &resp); err != nil {
		return nil, err
	}
	return &graph.Graph{Nodes: resp.Nodes, Edges: resp.Edges}, nil
}

// AnalyzeGitHub submits a GitHub repository for analysis.
func (c *Client) AnalyzeGitHub(ctx context.Context, req GitHubRequest) (*graph.Graph, error) {
	req = req.withDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp response
	if err := c.post(ctx, PathAnalyzeGitHub, req, &resp); err != nil {
		return nil, err
	}
	return &graph.Graph{Nodes: resp.Nodes, Edges: resp.Edges}, nil
}

// Generate asks the text-to-diagram service for flowchart markup.
func (c *Client) Generate(ctx context.Context, text string) (string, error) {
	if err := ValidateText(text); err != nil {
		return "", err
	}
	var resp response
	if err := c.post(ctx, PathGenerate, generateRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	return resp.GraphCode, nil
}

// ValidateText checks the free-text input of a generation request.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "Please enter some text to generate a diagram."}
	}
	return nil
}

// Validate checks that exactly one input source is present.
func (r AnalyzeRequest) Validate() error {
	hasDir := strings.TrimSpace(r.Directory) != ""
	switch {
	case !hasDir && len(r.Folder) == 0:
		return &ValidationError{Field: "directory", Message: "Please enter a directory path"}
	case hasDir && len(r.Folder) > 0:
		return &ValidationError{Field: "folder", Message: "Provide either a folder or a directory, not both"}
	}
	return nil
}

// Validate checks the required repository URL.
func (r GitHubRequest) Validate() error {
	if strings.TrimSpace(r.RepoURL) == "" {
		return &ValidationError{Field: "repo_url", Message: "Please enter a GitHub repository URL"}
	}
	if r.MaxNodes < 0 {
		return &ValidationError{Field: "max_nodes", Message: "max_nodes must be non-negative"}
	}
	return nil
}

func (r GitHubRequest) withDefaults() GitHubRequest {
	if strings.TrimSpace(r.Branch) == "" {
		r.Branch = DefaultBranch
	}
	if r.NodeTypes == nil {
		r.NodeTypes = []string{}
	}
	if r.EdgeTypes == nil {
		r.EdgeTypes = []string{}
	}
	return r
}

// post sends body as JSON and decodes the reply into out. A non-empty
// "error" field is an *APIError whatever the HTTP status.
func (c *Client) post(ctx context.Context, path string, body any, out *response) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTransport, path, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %v", ErrTransport, path, err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s returned status %d: %v", ErrMalformed, path, httpResp.StatusCode, err)
	}
	if out.Error != "" {
		return &APIError{Endpoint: path, StatusCode: httpResp.StatusCode, Message: out.Error}
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", ErrTransport, path, httpResp.StatusCode)
	}
	return nil
}
