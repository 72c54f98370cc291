package handlers

import (
	"fmt"
	"io"
	"net/http"

	"server/internal/session"
	"server/pkg/zip"

	"github.com/go-chi/chi/v5"
)

// ListAssets returns the session's generated images, oldest first.
func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	sess := a.currentSession(w, r)
	assets := sess.Assets()
	items := make([]map[string]any, 0, len(assets))
	for _, asset := range assets {
		items = append(items, map[string]any{
			"id":         asset.ID,
			"operation":  asset.Operation,
			"url":        a.assetURL(asset),
			"mime":       asset.MIME,
			"created_at": asset.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"session_id": sess.ID, "items": items})
}

// DownloadAsset streams one generated image. URL-shaped results are fetched
// from the vendor CDN here — the display layer owns that download, never the
// call core.
func (a *App) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	sess := a.currentSession(w, r)
	asset, ok := sess.Asset(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}
	data, err := a.assetData(r, asset)
	if err != nil {
		a.Logger.Error().Err(err).Str("asset_id", asset.ID).Msg("fetch asset data")
		a.error(w, http.StatusBadGateway, "fetch_failed", "failed to fetch asset")
		return
	}
	w.Header().Set("Content-Type", asset.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.png", asset.Operation, asset.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ZipAssets bundles every image of the session into one archive.
func (a *App) ZipAssets(w http.ResponseWriter, r *http.Request) {
	sess := a.currentSession(w, r)
	assets := sess.Assets()
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no assets in session")
		return
	}
	var entries []zip.Asset
	for _, asset := range assets {
		data, err := a.assetData(r, asset)
		if err != nil {
			a.Logger.Warn().Err(err).Str("asset_id", asset.ID).Msg("skip asset in archive")
			continue
		}
		entries = append(entries, zip.Asset{
			Filename: fmt.Sprintf("%s-%s", asset.Operation, asset.ID),
			MIME:     asset.MIME,
			Data:     data,
		})
	}
	archive := zip.ArchiveAssets(entries)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=session-%s.zip", sess.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) assetData(r *http.Request, asset session.Asset) ([]byte, error) {
	if asset.StorageKey != "" {
		return a.Files.Read(r.Context(), asset.StorageKey)
	}
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, asset.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := a.Downloader.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download asset: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
