package handlers

import (
	"io"
	"net/http"
	"strconv"

	"server/internal/studio"
)

const maxMultipartMemory = 32 << 20

// LifestyleShotByText places an uploaded product into a described scene.
func (a *App) LifestyleShotByText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	a.runEdit(w, r, &studio.LifestyleShotByTextParams{
		Image:               formUpload(r, "file"),
		SceneDescription:    r.FormValue("scene_description"),
		PlacementType:       r.FormValue("placement_type"),
		NumResults:          formInt(r, "num_results", 4),
		Fast:                formBool(r, "fast", true),
		OptimizeDescription: formBool(r, "optimize_description", true),
	})
}

// LifestyleShotByImage places an uploaded product into a reference scene.
func (a *App) LifestyleShotByImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	a.runEdit(w, r, &studio.LifestyleShotByImageParams{
		Image:         formUpload(r, "file"),
		Reference:     formUpload(r, "ref_image_file"),
		PlacementType: r.FormValue("placement_type"),
		NumResults:    formInt(r, "num_results", 4),
	})
}

// GenerativeFill regenerates the masked region of an uploaded image.
func (a *App) GenerativeFill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	params := &studio.GenerativeFillParams{
		Image:          formUpload(r, "file"),
		Mask:           formUpload(r, "mask_file"),
		Prompt:         r.FormValue("prompt"),
		NegativePrompt: r.FormValue("negative_prompt"),
		NumResults:     formInt(r, "num_results", 2),
	}
	if raw := r.FormValue("seed"); raw != "" {
		if seed, err := strconv.Atoi(raw); err == nil {
			params.Seed = &seed
		}
	}
	a.runEdit(w, r, params)
}

// EraseForeground removes the detected foreground elements.
func (a *App) EraseForeground(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	a.runEdit(w, r, &studio.EraseForegroundParams{
		Image:             formUpload(r, "file"),
		ContentModeration: formBool(r, "content_moderation", false),
	})
}

// AddShadow renders a product shadow.
func (a *App) AddShadow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	a.runEdit(w, r, &studio.AddShadowParams{
		Image:     formUpload(r, "file"),
		Intensity: formFloat(r, "shadow_intensity", 0.5),
		Blur:      formInt(r, "shadow_blur", 10),
	})
}

// CreatePackshot produces a clean packshot on a solid background.
func (a *App) CreatePackshot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	a.runEdit(w, r, &studio.CreatePackshotParams{
		Image:           formUpload(r, "file"),
		BackgroundColor: r.FormValue("background_color"),
	})
}

func (a *App) runEdit(w http.ResponseWriter, r *http.Request, req studio.Request) {
	sess := a.currentSession(w, r)
	res := a.Runner.Run(r.Context(), sess.Events, req)
	if !res.OK() {
		a.failure(w, r, res)
		return
	}
	images, err := a.recordOutput(r, sess, res)
	if err != nil {
		a.Logger.Error().Err(err).Msg("persist edited images")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist edited images")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"operation":  res.Operation,
		"session_id": sess.ID,
		"elapsed_ms": res.Elapsed.Milliseconds(),
		"images":     images,
	})
}

// formUpload reads one attached file. A missing or unreadable part yields a
// zero Upload so the validator reports the offending field.
func formUpload(r *http.Request, field string) studio.Upload {
	file, header, err := r.FormFile(field)
	if err != nil {
		return studio.Upload{}
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, studio.MaxUploadBytes+1))
	if err != nil {
		return studio.Upload{}
	}
	return studio.Upload{
		Name: header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Data: data,
	}
}

func formInt(r *http.Request, field string, fallback int) int {
	if raw := r.FormValue(field); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func formFloat(r *http.Request, field string, fallback float64) float64 {
	if raw := r.FormValue(field); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func formBool(r *http.Request, field string, fallback bool) bool {
	if raw := r.FormValue(field); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}
