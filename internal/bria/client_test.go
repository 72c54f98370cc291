package bria

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Logger:         zerolog.Nop(),
		RequestTimeout: timeout,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return client
}

func TestClientMissingKey(t *testing.T) {
	if _, err := NewClient(Options{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestClientPostJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %s", got)
		}
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if fields["prompt"] != "a red shoe" {
			t.Fatalf("prompt mismatch: %v", fields["prompt"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result_url": "https://cdn.example.com/out.png"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, 0)
	body, err := client.Post(context.Background(), "v1/text-to-image", Envelope{
		Fields: map[string]any{"prompt": "a red shoe"},
	})
	if err != nil {
		t.Fatalf("Post error: %v", err)
	}
	if body["result_url"] != "https://cdn.example.com/out.png" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestClientPostMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("sku"); got != "42" {
			t.Fatalf("sku mismatch: %s", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "product.png" {
			t.Fatalf("filename mismatch: %s", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result_url": "ok"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, 0)
	_, err := client.Post(context.Background(), "v1/product/packshot", Envelope{
		Fields: map[string]any{"sku": 42},
		Files:  []FilePart{{Field: "file", Name: "product.png", MIME: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}},
	})
	if err != nil {
		t.Fatalf("Post error: %v", err)
	}
}

func TestClientNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("prompt rejected"))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, 0)
	_, err := client.Post(context.Background(), "v1/text-to-image", Envelope{Fields: map[string]any{}})
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if be.Kind != KindNetwork {
		t.Fatalf("kind mismatch: %s", be.Kind)
	}
	if be.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status mismatch: %d", be.Status)
	}
	if be.Message != "prompt rejected" {
		t.Fatalf("message mismatch: %q", be.Message)
	}
}

func TestClientTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, 20*time.Millisecond)
	_, err := client.Post(context.Background(), "v1/text-to-image", Envelope{Fields: map[string]any{}})
	if got := Classify(err); got != KindTimeout {
		t.Fatalf("expected timeout, got %s (%v)", got, err)
	}
}

func TestClientContextDeadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Post(ctx, "v1/text-to-image", Envelope{Fields: map[string]any{}})
	if got := Classify(err); got != KindTimeout {
		t.Fatalf("expected timeout, got %s (%v)", got, err)
	}
}

func TestClientConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := newTestClient(t, ts.URL, 0)
	_, err := client.Post(context.Background(), "v1/text-to-image", Envelope{Fields: map[string]any{}})
	if got := Classify(err); got != KindNetwork {
		t.Fatalf("expected network, got %s (%v)", got, err)
	}
}

func TestClientMalformed200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL, 0)
	_, err := client.Post(context.Background(), "v1/text-to-image", Envelope{Fields: map[string]any{}})
	if got := Classify(err); got != KindResponseFormat {
		t.Fatalf("expected response_format, got %s (%v)", got, err)
	}
}
