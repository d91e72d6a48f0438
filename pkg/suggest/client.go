package suggest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/model"
)

// Defaults for the generateContent endpoint.
const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-3-flash-preview"
	DefaultTimeout  = 30 * time.Second
)

// StatusError is a non-2xx reply from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("suggestion service returned %d: %s", e.Code, body)
}

// Unwrap makes a failed status match ErrNoSuggestion.
func (e *StatusError) Unwrap() error { return ErrNoSuggestion }

// Options configures a Client.
type Options struct {
	Endpoint   string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to a Gemini-style generateContent REST endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
}

// NewClient returns a client; zero options fall back to the defaults.
func NewClient(opts Options) *Client {
	c := &Client{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		model:    opts.Model,
		apiKey:   opts.APIKey,
		timeout:  opts.Timeout,
		http:     opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// New returns a Client when apiKey is set and Disabled otherwise.
func New(opts Options) Suggester {
	if opts.APIKey == "" {
		return Disabled{}
	}
	return NewClient(opts)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the trimmed reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	defer debug.LogEnterExit("suggest.Generate")()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	u := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("suggestion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read suggestion: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode suggestion: %w", err)
	}
	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoSuggestion
	}
	debug.Log("suggestion: %d chars", len(text))
	return text, nil
}

// SuggestContent asks for a new title or text based on the current one.
func (c *Client) SuggestContent(ctx context.Context, current string, kind model.Kind) (string, error) {
	if !kind.IsTextual() {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	return c.Generate(ctx, ContentPrompt(current, kind))
}

// SuggestColors asks for a text and accent colour for background.
func (c *Client) SuggestColors(ctx context.Context, background string) (Pairing, error) {
	if strings.TrimSpace(background) == "" {
		return Pairing{}, fmt.Errorf("%w: block has no background color", ErrUnsupported)
	}
	reply, err := c.Generate(ctx, ColorsPrompt(background))
	if err != nil {
		return Pairing{}, err
	}
	return ParsePairing(reply)
}
