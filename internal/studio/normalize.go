package studio

import (
	"encoding/base64"
	"strings"

	"server/internal/bria"
)

// Image is one normalized result item. Exactly one of Data and URL is set:
// inline payloads are decoded to bytes here, URL payloads are passed through
// untouched and downloaded only by the display layer.
type Image struct {
	Data []byte
	URL  string
}

// Output is the canonical success payload for every operation.
type Output struct {
	Images []Image
	Text   string
}

// Normalize extracts the image payload from a parsed vendor body according to
// the endpoint's documented shape. Shape sniffing stays behind this boundary;
// an absent field or unrecognized payload is a response-format failure.
func Normalize(body map[string]any, shape Shape) (*Output, error) {
	switch shape {
	case ShapeInlineImages:
		return normalizeInlineImages(body)
	case ShapeResultURL:
		return normalizeResultURL(body)
	case ShapeResultURLs:
		return normalizeResultURLs(body)
	case ShapeText:
		return normalizeText(body)
	default:
		return nil, &bria.Error{Kind: bria.KindResponseFormat, Message: "unknown response shape " + string(shape)}
	}
}

func normalizeInlineImages(body map[string]any) (*Output, error) {
	result, ok := body["result"].(map[string]any)
	if !ok {
		return nil, shapeError("missing result object")
	}
	raw, ok := result["images"].([]any)
	if !ok || len(raw) == 0 {
		return nil, shapeError("missing result.images list")
	}
	out := &Output{Images: make([]Image, 0, len(raw))}
	for _, item := range raw {
		encoded, ok := item.(string)
		if !ok {
			return nil, shapeError("result.images item is not a string")
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, &bria.Error{Kind: bria.KindResponseFormat, Message: "invalid base64 image payload", Err: err}
		}
		out.Images = append(out.Images, Image{Data: data})
	}
	return out, nil
}

func normalizeResultURL(body map[string]any) (*Output, error) {
	url, ok := body["result_url"].(string)
	if !ok || strings.TrimSpace(url) == "" {
		return nil, shapeError("missing result_url")
	}
	return &Output{Images: []Image{{URL: url}}}, nil
}

func normalizeResultURLs(body map[string]any) (*Output, error) {
	raw, ok := body["result_urls"].([]any)
	if !ok || len(raw) == 0 {
		return nil, shapeError("missing result_urls list")
	}
	out := &Output{Images: make([]Image, 0, len(raw))}
	for _, item := range raw {
		url, ok := item.(string)
		if !ok || strings.TrimSpace(url) == "" {
			return nil, shapeError("result_urls item is not a url")
		}
		out.Images = append(out.Images, Image{URL: url})
	}
	return out, nil
}

// The prompt enhancer replies with its variation under the historical
// "prompt variations" key.
func normalizeText(body map[string]any) (*Output, error) {
	text, ok := body["prompt variations"].(string)
	if !ok {
		text, ok = body["result"].(string)
	}
	if !ok || strings.TrimSpace(text) == "" {
		return nil, shapeError("missing prompt variation text")
	}
	return &Output{Text: strings.TrimSpace(text)}, nil
}

func shapeError(msg string) *bria.Error {
	return &bria.Error{Kind: bria.KindResponseFormat, Message: msg}
}
