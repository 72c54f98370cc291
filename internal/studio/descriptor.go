package studio

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shape declares which success body the vendor documents for an endpoint.
// The contract is fixed per endpoint: text-to-image returns inline base64
// images, every editing endpoint returns URL(s), the prompt enhancer returns
// text.
type Shape string

const (
	ShapeInlineImages Shape = "inline_images"
	ShapeResultURL    Shape = "result_url"
	ShapeResultURLs   Shape = "result_urls"
	ShapeText         Shape = "text"
)

// Descriptor identifies one vendor operation: its endpoint, how the request
// body is serialized and which response shape to expect.
type Descriptor struct {
	Name      string
	Endpoint  string
	Multipart bool
	Shape     Shape
}

var (
	OpGenerateHDImage = Descriptor{
		Name:     "generate_hd_image",
		Endpoint: "v1/text-to-image",
		Shape:    ShapeInlineImages,
	}
	OpEnhancePrompt = Descriptor{
		Name:     "enhance_prompt",
		Endpoint: "v1/prompt_enhancer",
		Shape:    ShapeText,
	}
	OpLifestyleShotByText = Descriptor{
		Name:      "lifestyle_shot_by_text",
		Endpoint:  "v1/product/lifestyle_shot_by_text",
		Multipart: true,
		Shape:     ShapeResultURLs,
	}
	OpLifestyleShotByImage = Descriptor{
		Name:      "lifestyle_shot_by_image",
		Endpoint:  "v1/product/lifestyle_shot_by_image",
		Multipart: true,
		Shape:     ShapeResultURLs,
	}
	OpGenerativeFill = Descriptor{
		Name:      "generative_fill",
		Endpoint:  "v1/gen_fill",
		Multipart: true,
		Shape:     ShapeResultURLs,
	}
	OpEraseForeground = Descriptor{
		Name:      "erase_foreground",
		Endpoint:  "v1/erase_foreground",
		Multipart: true,
		Shape:     ShapeResultURL,
	}
	OpAddShadow = Descriptor{
		Name:      "add_shadow",
		Endpoint:  "v1/product/shadow",
		Multipart: true,
		Shape:     ShapeResultURL,
	}
	OpCreatePackshot = Descriptor{
		Name:      "create_packshot",
		Endpoint:  "v1/product/packshot",
		Multipart: true,
		Shape:     ShapeResultURL,
	}
)

// DisplayName renders the operation name for user-facing messages.
func (d Descriptor) DisplayName() string {
	c := cases.Title(language.Und)
	return c.String(strings.ReplaceAll(d.Name, "_", " "))
}
