package bria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingAPIKey indicates that the client was configured without a bearer
// token. The caller treats this as a fatal startup condition.
var ErrMissingAPIKey = errors.New("bria: api key is required")

const maxErrorBodyBytes = 2048

// Options configures the Bria engine client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Bria image engine. It is stateless aside
// from the base URL and credential, and performs exactly one attempt per
// invocation.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// FilePart is a binary attachment carried in a multipart request.
type FilePart struct {
	Field string
	Name  string
	MIME  string
	Data  []byte
}

// Envelope is a validated request payload ready to serialize. Requests with
// no attachments are sent as JSON, otherwise as multipart form data.
type Envelope struct {
	Fields map[string]any
	Files  []FilePart
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://engine.prod.bria-api.com"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// Post sends one request to the given endpoint and returns the parsed JSON
// body on HTTP 200. Any other outcome is classified: non-200 statuses and
// transport-level failures are network errors, deadline expiry is a timeout,
// and an unparseable 200 body is a response-format error.
func (c *Client) Post(ctx context.Context, endpoint string, env Envelope) (map[string]any, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	body, contentType, err := encodeBody(env)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Message: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		classified := classifyTransport(ctx, err)
		c.logger.Error().
			Str("endpoint", endpoint).
			Dur("duration", duration).
			Err(err).
			Msg("bria: request failed")
		return nil, classified
	}
	defer resp.Body.Close()

	c.logger.Info().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("bria: api call")

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &Error{
			Kind:    KindNetwork,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(detail)),
		}
	}

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Kind: KindResponseFormat, Message: "decode response body", Err: err}
	}
	return parsed, nil
}

func encodeBody(env Envelope) (io.Reader, string, error) {
	if len(env.Files) == 0 {
		raw, err := json.Marshal(env.Fields)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for key, value := range env.Fields {
		if err := mw.WriteField(key, fmt.Sprint(value)); err != nil {
			return nil, "", err
		}
	}
	for _, file := range env.Files {
		part, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

func classifyTransport(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "deadline exceeded", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "deadline exceeded", Err: err}
	}
	return &Error{Kind: KindNetwork, Message: "connection failed", Err: err}
}
