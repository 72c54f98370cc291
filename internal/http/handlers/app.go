package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/bria"
	"server/internal/infra"
	"server/internal/middleware"
	"server/internal/session"
	"server/internal/storage"
	"server/internal/studio"
)

// App bundles the dependencies shared by every handler.
type App struct {
	Config     *infra.Config
	Logger     infra.Logger
	Runner     *studio.Runner
	Sessions   *session.Store
	Files      *storage.FileStore
	Downloader *http.Client
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, runner *studio.Runner, sessions *session.Store, files *storage.FileStore) *App {
	return &App{
		Config:     cfg,
		Logger:     logger,
		Runner:     runner,
		Sessions:   sessions,
		Files:      files,
		Downloader: &http.Client{Timeout: cfg.DownloadTimeout},
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error":   errCode,
		"message": message,
	})
}

// currentSession resolves the caller's session, creating one on first use,
// and echoes the ID so the browser can persist it.
func (a *App) currentSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := a.Sessions.Get(middleware.ResolveSessionID(r.Context()))
	w.Header().Set(middleware.SessionHeader, sess.ID)
	return sess
}

// failure renders a failed CallResult. Every category maps to one status; the
// message stays short and names the operation.
func (a *App) failure(w http.ResponseWriter, r *http.Request, res studio.CallResult) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, statusForKind(res.Failure.Kind), map[string]any{
		"error":      string(res.Failure.Kind),
		"message":    localizedFailure(locale, res.Failure),
		"operation":  res.Operation,
		"elapsed_ms": res.Elapsed.Milliseconds(),
	})
}

func statusForKind(kind bria.Kind) int {
	switch kind {
	case bria.KindValidation:
		return http.StatusBadRequest
	case bria.KindTimeout:
		return http.StatusGatewayTimeout
	case bria.KindNetwork, bria.KindResponseFormat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var failurePrefixID = map[bria.Kind]string{
	bria.KindValidation:     "input tidak valid",
	bria.KindNetwork:        "layanan gambar bermasalah",
	bria.KindTimeout:        "permintaan melebihi batas waktu",
	bria.KindResponseFormat: "respons layanan tidak dikenali",
	bria.KindUnexpected:     "terjadi kesalahan tak terduga",
}

func localizedFailure(locale string, f *studio.Failure) string {
	if locale == "id" {
		if prefix, ok := failurePrefixID[f.Kind]; ok {
			return prefix + ": " + f.Message
		}
	}
	return f.Message
}

// recordOutput persists inline images, tracks every result as a session asset
// and returns the display representation for the UI.
func (a *App) recordOutput(r *http.Request, sess *session.Session, res studio.CallResult) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(res.Output.Images))
	for _, img := range res.Output.Images {
		asset := session.Asset{Operation: res.Operation, MIME: "image/png"}
		if img.URL != "" {
			asset.URL = img.URL
		} else {
			key, err := a.Files.Write(r.Context(), storageKey(sess.ID), img.Data)
			if err != nil {
				return nil, err
			}
			asset.StorageKey = key
		}
		asset = sess.AddAsset(asset)
		out = append(out, map[string]any{
			"id":         asset.ID,
			"operation":  asset.Operation,
			"url":        a.assetURL(asset),
			"mime":       asset.MIME,
			"created_at": asset.CreatedAt,
		})
	}
	return out, nil
}

func (a *App) assetURL(asset session.Asset) string {
	if asset.URL != "" {
		return asset.URL
	}
	return strings.TrimRight(a.Config.StorageBaseURL, "/") + "/" + asset.StorageKey
}

func storageKey(sessionID string) string {
	return "sessions/" + sessionID + "/" + newAssetFilename()
}

func newAssetFilename() string {
	return time.Now().UTC().Format("20060102T150405") + "-" + uuid.NewString()[:8] + ".png"
}
