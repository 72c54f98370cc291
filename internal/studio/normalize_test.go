package studio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"server/internal/bria"
)

func expectShapeError(t *testing.T, err error) {
	t.Helper()
	var be *bria.Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *bria.Error, got %v", err)
	}
	if be.Kind != bria.KindResponseFormat {
		t.Fatalf("expected response_format kind, got %s", be.Kind)
	}
}

func TestNormalizeInlineImagesRoundTrip(t *testing.T) {
	original := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0xde, 0xad, 0xbe, 0xef}
	body := map[string]any{
		"result": map[string]any{
			"images": []any{base64.StdEncoding.EncodeToString(original)},
		},
	}
	out, err := Normalize(body, ShapeInlineImages)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out.Images) != 1 {
		t.Fatalf("expected one image, got %d", len(out.Images))
	}
	if !bytes.Equal(out.Images[0].Data, original) {
		t.Fatal("decoded bytes differ from original")
	}
	if out.Images[0].URL != "" {
		t.Fatal("inline image must not carry a URL")
	}
}

func TestNormalizeInlineImagesBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"no result", map[string]any{}},
		{"result not object", map[string]any{"result": "x"}},
		{"no images", map[string]any{"result": map[string]any{}}},
		{"empty images", map[string]any{"result": map[string]any{"images": []any{}}}},
		{"non-string item", map[string]any{"result": map[string]any{"images": []any{42}}}},
		{"invalid base64", map[string]any{"result": map[string]any{"images": []any{"!!!not-base64!!!"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Normalize(tc.body, ShapeInlineImages); err == nil {
				t.Fatal("expected error")
			} else {
				expectShapeError(t, err)
			}
		})
	}
}

func TestNormalizeResultURL(t *testing.T) {
	out, err := Normalize(map[string]any{"result_url": "https://cdn.example.com/a.png"}, ShapeResultURL)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out.Images) != 1 || out.Images[0].URL != "https://cdn.example.com/a.png" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Images[0].Data != nil {
		t.Fatal("url result must not carry inline bytes")
	}

	if _, err := Normalize(map[string]any{"result_url": ""}, ShapeResultURL); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestNormalizeResultURLs(t *testing.T) {
	body := map[string]any{"result_urls": []any{
		"https://cdn.example.com/1.png",
		"https://cdn.example.com/2.png",
		"https://cdn.example.com/3.png",
	}}
	out, err := Normalize(body, ShapeResultURLs)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out.Images) != 3 {
		t.Fatalf("item count mismatch: %d", len(out.Images))
	}
	for i, img := range out.Images {
		if img.URL == "" {
			t.Fatalf("image %d missing url", i)
		}
	}

	_, err = Normalize(map[string]any{"result_urls": []any{"ok", 3}}, ShapeResultURLs)
	expectShapeError(t, err)
}

func TestNormalizeText(t *testing.T) {
	out, err := Normalize(map[string]any{"prompt variations": "a luminous red shoe, studio light"}, ShapeText)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out.Text != "a luminous red shoe, studio light" {
		t.Fatalf("text mismatch: %q", out.Text)
	}

	out, err = Normalize(map[string]any{"result": "fallback text"}, ShapeText)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if out.Text != "fallback text" {
		t.Fatalf("text mismatch: %q", out.Text)
	}

	_, err = Normalize(map[string]any{}, ShapeText)
	expectShapeError(t, err)
}
