package studio

import (
	"bytes"
	"errors"
	"testing"

	"server/internal/bria"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	var be *bria.Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *bria.Error, got %v", err)
	}
	if be.Kind != bria.KindValidation {
		t.Fatalf("expected validation kind, got %s", be.Kind)
	}
	return be.Field
}

func pngUpload() Upload {
	return Upload{Name: "product.png", MIME: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}
}

func TestGenerateHDImageValidate(t *testing.T) {
	valid := func() *GenerateHDImageParams {
		return &GenerateHDImageParams{Prompt: "a red shoe on white background", Width: 512, Height: 512, Steps: 20, Guidance: 7.5}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*GenerateHDImageParams)
		field  string
	}{
		{"empty prompt", func(p *GenerateHDImageParams) { p.Prompt = "   " }, "prompt"},
		{"width below range", func(p *GenerateHDImageParams) { p.Width = 128 }, "width"},
		{"width above range", func(p *GenerateHDImageParams) { p.Width = 2048 }, "width"},
		{"width not multiple of 64", func(p *GenerateHDImageParams) { p.Width = 300 }, "width"},
		{"height not multiple of 64", func(p *GenerateHDImageParams) { p.Height = 500 }, "height"},
		{"steps too low", func(p *GenerateHDImageParams) { p.Steps = 5 }, "num_inference_steps"},
		{"steps too high", func(p *GenerateHDImageParams) { p.Steps = 80 }, "num_inference_steps"},
		{"guidance too low", func(p *GenerateHDImageParams) { p.Guidance = 0.5 }, "guidance_scale"},
		{"guidance too high", func(p *GenerateHDImageParams) { p.Guidance = 25 }, "guidance_scale"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := validationField(t, err); got != tc.field {
				t.Fatalf("field mismatch: got %q want %q", got, tc.field)
			}
		})
	}
}

func TestGenerateHDImageTrimsPrompt(t *testing.T) {
	p := &GenerateHDImageParams{Prompt: "  a red shoe  ", Width: 512, Height: 512, Steps: 20, Guidance: 7.5}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if p.Prompt != "a red shoe" {
		t.Fatalf("prompt not trimmed: %q", p.Prompt)
	}
	env := p.Envelope()
	if len(env.Fields) != 5 {
		t.Fatalf("expected exactly five fields, got %d: %v", len(env.Fields), env.Fields)
	}
	if env.Fields["prompt"] != "a red shoe" || env.Fields["width"] != 512 {
		t.Fatalf("fields forwarded changed: %v", env.Fields)
	}
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name   string
		upload Upload
		ok     bool
	}{
		{"valid png", pngUpload(), true},
		{"valid webp", Upload{Name: "a.webp", MIME: "image/webp", Data: []byte{1}}, true},
		{"missing data", Upload{Name: "a.png", MIME: "image/png"}, false},
		{"oversize", Upload{Name: "a.png", MIME: "image/png", Data: bytes.Repeat([]byte{1}, MaxUploadBytes+1)}, false},
		{"bad mime", Upload{Name: "a.gif", MIME: "image/gif", Data: []byte{1}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := requireUpload("file", tc.upload)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if got := validationField(t, err); got != "file" {
					t.Fatalf("field mismatch: %q", got)
				}
			}
		})
	}
}

func TestLifestyleShotByTextValidate(t *testing.T) {
	p := &LifestyleShotByTextParams{
		Image:            pngUpload(),
		SceneDescription: "modern kitchen with marble countertops",
		NumResults:       4,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if p.PlacementType != PlacementAutomatic {
		t.Fatalf("placement default mismatch: %q", p.PlacementType)
	}

	p.PlacementType = "floating"
	if got := validationField(t, p.Validate()); got != "placement_type" {
		t.Fatalf("field mismatch: %q", got)
	}

	p.PlacementType = PlacementManual
	p.NumResults = 9
	if got := validationField(t, p.Validate()); got != "num_results" {
		t.Fatalf("field mismatch: %q", got)
	}
}

func TestGenerativeFillValidate(t *testing.T) {
	seed := 7
	p := &GenerativeFillParams{
		Image:      pngUpload(),
		Mask:       Upload{Name: "mask.png", MIME: "image/png", Data: []byte{1}},
		Prompt:     "a vase of flowers",
		NumResults: 2,
		Seed:       &seed,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	bad := 0
	p.Seed = &bad
	if got := validationField(t, p.Validate()); got != "seed" {
		t.Fatalf("field mismatch: %q", got)
	}

	p.Seed = nil
	p.Mask = Upload{}
	if got := validationField(t, p.Validate()); got != "mask_file" {
		t.Fatalf("field mismatch: %q", got)
	}
}

func TestCreatePackshotValidate(t *testing.T) {
	p := &CreatePackshotParams{Image: pngUpload()}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if p.BackgroundColor != "#FFFFFF" {
		t.Fatalf("default background mismatch: %q", p.BackgroundColor)
	}

	p.BackgroundColor = "white"
	if got := validationField(t, p.Validate()); got != "background_color" {
		t.Fatalf("field mismatch: %q", got)
	}
}

func TestAddShadowValidate(t *testing.T) {
	p := &AddShadowParams{Image: pngUpload(), Intensity: 0.5, Blur: 10}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	p.Intensity = 1.5
	if got := validationField(t, p.Validate()); got != "shadow_intensity" {
		t.Fatalf("field mismatch: %q", got)
	}
	p.Intensity = 0.5
	p.Blur = 0
	if got := validationField(t, p.Validate()); got != "shadow_blur" {
		t.Fatalf("field mismatch: %q", got)
	}
}
