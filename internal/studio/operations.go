package studio

import (
	"strings"

	"server/internal/bria"
)

// Request is one validated vendor operation input. Validate must pass before
// Envelope is used; the only mutation it performs is trimming whitespace from
// text fields.
type Request interface {
	Descriptor() Descriptor
	Validate() error
	Envelope() bria.Envelope
}

// GenerateHDImageParams drives text-to-image generation.
type GenerateHDImageParams struct {
	Prompt   string
	Width    int
	Height   int
	Steps    int
	Guidance float64
}

func (p *GenerateHDImageParams) Descriptor() Descriptor { return OpGenerateHDImage }

func (p *GenerateHDImageParams) Validate() error {
	prompt, err := requireText("prompt", p.Prompt)
	if err != nil {
		return err
	}
	p.Prompt = prompt
	if err := requireDimension("width", p.Width); err != nil {
		return err
	}
	if err := requireDimension("height", p.Height); err != nil {
		return err
	}
	if err := requireRange("num_inference_steps", p.Steps, MinSteps, MaxSteps); err != nil {
		return err
	}
	return requireFloatRange("guidance_scale", p.Guidance, MinGuidance, MaxGuidance)
}

func (p *GenerateHDImageParams) Envelope() bria.Envelope {
	return bria.Envelope{Fields: map[string]any{
		"prompt":              p.Prompt,
		"width":               p.Width,
		"height":              p.Height,
		"num_inference_steps": p.Steps,
		"guidance_scale":      p.Guidance,
	}}
}

// EnhancePromptParams asks the vendor for a richer prompt variation.
type EnhancePromptParams struct {
	Prompt string
}

func (p *EnhancePromptParams) Descriptor() Descriptor { return OpEnhancePrompt }

func (p *EnhancePromptParams) Validate() error {
	prompt, err := requireText("prompt", p.Prompt)
	if err != nil {
		return err
	}
	p.Prompt = prompt
	return nil
}

func (p *EnhancePromptParams) Envelope() bria.Envelope {
	return bria.Envelope{Fields: map[string]any{"prompt": p.Prompt}}
}

// Placement types accepted by the lifestyle shot endpoints.
const (
	PlacementAutomatic         = "automatic"
	PlacementOriginal          = "original"
	PlacementManual            = "manual_placement"
	PlacementCustomCoordinates = "custom_coordinates"
)

// LifestyleShotByTextParams places a product into a described scene.
type LifestyleShotByTextParams struct {
	Image               Upload
	SceneDescription    string
	PlacementType       string
	NumResults          int
	Fast                bool
	OptimizeDescription bool
}

func (p *LifestyleShotByTextParams) Descriptor() Descriptor { return OpLifestyleShotByText }

func (p *LifestyleShotByTextParams) Validate() error {
	if err := requireUpload("file", p.Image); err != nil {
		return err
	}
	scene, err := requireText("scene_description", p.SceneDescription)
	if err != nil {
		return err
	}
	p.SceneDescription = scene
	if p.PlacementType == "" {
		p.PlacementType = PlacementAutomatic
	}
	if err := requireEnum("placement_type", p.PlacementType,
		PlacementAutomatic, PlacementOriginal, PlacementManual, PlacementCustomCoordinates); err != nil {
		return err
	}
	return requireRange("num_results", p.NumResults, 1, 8)
}

func (p *LifestyleShotByTextParams) Envelope() bria.Envelope {
	return bria.Envelope{
		Fields: map[string]any{
			"scene_description":    p.SceneDescription,
			"placement_type":       p.PlacementType,
			"num_results":          p.NumResults,
			"fast":                 p.Fast,
			"optimize_description": p.OptimizeDescription,
		},
		Files: []bria.FilePart{{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data}},
	}
}

// LifestyleShotByImageParams places a product into a reference scene image.
type LifestyleShotByImageParams struct {
	Image         Upload
	Reference     Upload
	PlacementType string
	NumResults    int
}

func (p *LifestyleShotByImageParams) Descriptor() Descriptor { return OpLifestyleShotByImage }

func (p *LifestyleShotByImageParams) Validate() error {
	if err := requireUpload("file", p.Image); err != nil {
		return err
	}
	if err := requireUpload("ref_image_file", p.Reference); err != nil {
		return err
	}
	if p.PlacementType == "" {
		p.PlacementType = PlacementAutomatic
	}
	if err := requireEnum("placement_type", p.PlacementType,
		PlacementAutomatic, PlacementOriginal, PlacementManual, PlacementCustomCoordinates); err != nil {
		return err
	}
	return requireRange("num_results", p.NumResults, 1, 8)
}

func (p *LifestyleShotByImageParams) Envelope() bria.Envelope {
	return bria.Envelope{
		Fields: map[string]any{
			"placement_type": p.PlacementType,
			"num_results":    p.NumResults,
		},
		Files: []bria.FilePart{
			{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data},
			{Field: "ref_image_file", Name: p.Reference.Name, MIME: p.Reference.MIME, Data: p.Reference.Data},
		},
	}
}

// GenerativeFillParams regenerates the masked region of an image.
type GenerativeFillParams struct {
	Image          Upload
	Mask           Upload
	Prompt         string
	NegativePrompt string
	NumResults     int
	Seed           *int
}

func (p *GenerativeFillParams) Descriptor() Descriptor { return OpGenerativeFill }

func (p *GenerativeFillParams) Validate() error {
	if err := requireUpload("file", p.Image); err != nil {
		return err
	}
	if err := requireUpload("mask_file", p.Mask); err != nil {
		return err
	}
	prompt, err := requireText("prompt", p.Prompt)
	if err != nil {
		return err
	}
	p.Prompt = prompt
	p.NegativePrompt = strings.TrimSpace(p.NegativePrompt)
	if err := requireRange("num_results", p.NumResults, 1, 4); err != nil {
		return err
	}
	if p.Seed != nil && *p.Seed < 1 {
		return bria.Invalid("seed", "must be a positive integer")
	}
	return nil
}

func (p *GenerativeFillParams) Envelope() bria.Envelope {
	fields := map[string]any{
		"prompt":      p.Prompt,
		"num_results": p.NumResults,
	}
	if p.NegativePrompt != "" {
		fields["negative_prompt"] = p.NegativePrompt
	}
	if p.Seed != nil {
		fields["seed"] = *p.Seed
	}
	return bria.Envelope{
		Fields: fields,
		Files: []bria.FilePart{
			{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data},
			{Field: "mask_file", Name: p.Mask.Name, MIME: p.Mask.MIME, Data: p.Mask.Data},
		},
	}
}

// EraseForegroundParams removes the detected foreground elements.
type EraseForegroundParams struct {
	Image             Upload
	ContentModeration bool
}

func (p *EraseForegroundParams) Descriptor() Descriptor { return OpEraseForeground }

func (p *EraseForegroundParams) Validate() error {
	return requireUpload("file", p.Image)
}

func (p *EraseForegroundParams) Envelope() bria.Envelope {
	return bria.Envelope{
		Fields: map[string]any{"content_moderation": p.ContentModeration},
		Files:  []bria.FilePart{{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data}},
	}
}

// AddShadowParams renders a product shadow.
type AddShadowParams struct {
	Image     Upload
	Intensity float64
	Blur      int
}

func (p *AddShadowParams) Descriptor() Descriptor { return OpAddShadow }

func (p *AddShadowParams) Validate() error {
	if err := requireUpload("file", p.Image); err != nil {
		return err
	}
	if err := requireFloatRange("shadow_intensity", p.Intensity, 0.1, 1.0); err != nil {
		return err
	}
	return requireRange("shadow_blur", p.Blur, 1, 20)
}

func (p *AddShadowParams) Envelope() bria.Envelope {
	return bria.Envelope{
		Fields: map[string]any{
			"shadow_intensity": p.Intensity,
			"shadow_blur":      p.Blur,
		},
		Files: []bria.FilePart{{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data}},
	}
}

// CreatePackshotParams produces a clean packshot on a solid background.
type CreatePackshotParams struct {
	Image           Upload
	BackgroundColor string
}

func (p *CreatePackshotParams) Descriptor() Descriptor { return OpCreatePackshot }

func (p *CreatePackshotParams) Validate() error {
	if err := requireUpload("file", p.Image); err != nil {
		return err
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = "#FFFFFF"
	}
	if !isHexColor(p.BackgroundColor) {
		return bria.Invalid("background_color", "must be a #RRGGBB hex color")
	}
	return nil
}

func (p *CreatePackshotParams) Envelope() bria.Envelope {
	return bria.Envelope{
		Fields: map[string]any{"background_color": p.BackgroundColor},
		Files:  []bria.FilePart{{Field: "file", Name: p.Image.Name, MIME: p.Image.MIME, Data: p.Image.Data}},
	}
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
