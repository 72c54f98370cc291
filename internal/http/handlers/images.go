package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/studio"
)

type imageGenerateRequest struct {
	Prompt   string  `json:"prompt"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Steps    int     `json:"steps"`
	Guidance float64 `json:"guidance"`
}

// ImagesGenerate runs text-to-image generation. Inline results are persisted
// locally so the browser can fetch them from /static.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Width == 0 {
		req.Width = 512
	}
	if req.Height == 0 {
		req.Height = 512
	}
	if req.Steps == 0 {
		req.Steps = 20
	}
	if req.Guidance == 0 {
		req.Guidance = 7.5
	}

	sess := a.currentSession(w, r)
	res := a.Runner.Run(r.Context(), sess.Events, &studio.GenerateHDImageParams{
		Prompt:   req.Prompt,
		Width:    req.Width,
		Height:   req.Height,
		Steps:    req.Steps,
		Guidance: req.Guidance,
	})
	if !res.OK() {
		a.failure(w, r, res)
		return
	}

	images, err := a.recordOutput(r, sess, res)
	if err != nil {
		a.Logger.Error().Err(err).Msg("persist generated images")
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist generated images")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"operation":  res.Operation,
		"session_id": sess.ID,
		"elapsed_ms": res.Elapsed.Milliseconds(),
		"images":     images,
	})
}

type enhancePromptRequest struct {
	Prompt string `json:"prompt"`
}

// EnhancePrompt asks the vendor for a richer variation of the user's prompt.
func (a *App) EnhancePrompt(w http.ResponseWriter, r *http.Request) {
	var req enhancePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	sess := a.currentSession(w, r)
	res := a.Runner.Run(r.Context(), sess.Events, &studio.EnhancePromptParams{Prompt: req.Prompt})
	if !res.OK() {
		a.failure(w, r, res)
		return
	}
	sess.AddPrompt(res.Output.Text)
	a.json(w, http.StatusOK, map[string]any{
		"operation":  res.Operation,
		"session_id": sess.ID,
		"elapsed_ms": res.Elapsed.Milliseconds(),
		"prompt":     res.Output.Text,
		"history":    sess.Prompts(),
	})
}
