package studio

import (
	"strings"

	"server/internal/bria"
)

// Vendor-documented parameter bounds. Validation runs before any network I/O
// and never coerces values beyond trimming whitespace from text fields.
const (
	MinDimension    = 256
	MaxDimension    = 1024
	DimensionStride = 64
	MinSteps        = 10
	MaxSteps        = 50
	MinGuidance     = 1.0
	MaxGuidance     = 20.0
	MaxUploadBytes  = 10 << 20
)

var allowedUploadMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Upload is a user-provided image attachment.
type Upload struct {
	Name string
	MIME string
	Data []byte
}

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", bria.Invalid(field, "must not be empty")
	}
	return trimmed, nil
}

func requireDimension(field string, value int) error {
	if value < MinDimension || value > MaxDimension {
		return bria.Invalid(field, "must be between %d and %d", MinDimension, MaxDimension)
	}
	if value%DimensionStride != 0 {
		return bria.Invalid(field, "must be a multiple of %d", DimensionStride)
	}
	return nil
}

func requireRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return bria.Invalid(field, "must be between %d and %d", lo, hi)
	}
	return nil
}

func requireFloatRange(field string, value, lo, hi float64) error {
	if value < lo || value > hi {
		return bria.Invalid(field, "must be between %.1f and %.1f", lo, hi)
	}
	return nil
}

func requireEnum(field, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return bria.Invalid(field, "must be one of %s", strings.Join(allowed, ", "))
}

func requireUpload(field string, u Upload) error {
	if len(u.Data) == 0 {
		return bria.Invalid(field, "image data is required")
	}
	if len(u.Data) > MaxUploadBytes {
		return bria.Invalid(field, "exceeds %d MiB limit", MaxUploadBytes>>20)
	}
	if !allowedUploadMIME[u.MIME] {
		return bria.Invalid(field, "unsupported type %q, expected JPEG, PNG or WEBP", u.MIME)
	}
	return nil
}
