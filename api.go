// CLAUDE:SUMMARY Local HTTP control API: recent list CRUD, open/play endpoints, transport passthrough.
package reprise

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazyhaar/reprise/bookmark"
	"github.com/hazyhaar/reprise/recent"
)

// entryView is the wire form of a recent entry. Bookmark bytes stay
// server-side; the UI addresses entries by index into the list it rendered.
type entryView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	LastWatched int64  `json:"last_watched"`
}

func viewList(list []recent.Entry) []entryView {
	out := make([]entryView, len(list))
	for i, e := range list {
		out[i] = entryView{
			Index:       i,
			ID:          e.ID,
			Name:        e.Name,
			LastWatched: e.LastWatched.UnixMilli(),
		}
	}
	return out
}

// Router builds the local control API for a front-end to drive.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/recent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, viewList(svc.Recents(r.Context())))
	})

	r.Post("/api/open", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
			writeJSON(w, 400, map[string]string{"error": "path is required"})
			return
		}
		res, err := svc.OpenFile(r.Context(), req.Path)
		if err != nil {
			writeJSON(w, 422, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, 200, map[string]any{
			"remembered": res.Remembered,
			"recent":     viewList(res.List),
		})
	})

	r.Post("/api/recent/{index}/play", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeJSON(w, 400, map[string]string{"error": "invalid index"})
			return
		}
		list, err := svc.PlayRecent(r.Context(), index)
		switch {
		case errors.Is(err, ErrNoSuchEntry):
			writeJSON(w, 404, map[string]string{"error": err.Error()})
		case errors.Is(err, bookmark.ErrUnresolvable):
			// The file is gone; the list shrinks on the next read.
			writeJSON(w, 410, map[string]string{"error": err.Error()})
		case err != nil:
			writeJSON(w, 422, map[string]string{"error": err.Error()})
		default:
			writeJSON(w, 200, map[string]any{"recent": viewList(list)})
		}
	})

	r.Delete("/api/recent/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeJSON(w, 400, map[string]string{"error": "invalid index"})
			return
		}
		writeJSON(w, 200, map[string]any{"recent": viewList(svc.RemoveRecent(r.Context(), index))})
	})

	r.Post("/api/player/pause", func(w http.ResponseWriter, _ *http.Request) {
		if err := svc.Pause(); err != nil {
			writeJSON(w, 422, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, 200, map[string]string{"status": "paused"})
	})

	r.Post("/api/player/seek", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Seconds float64 `json:"seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, 400, map[string]string{"error": "seconds is required"})
			return
		}
		if err := svc.Seek(req.Seconds); err != nil {
			writeJSON(w, 422, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/player/rate", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Rate float64 `json:"rate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Rate <= 0 {
			writeJSON(w, 400, map[string]string{"error": "rate must be > 0"})
			return
		}
		if err := svc.SetRate(req.Rate); err != nil {
			writeJSON(w, 422, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, 200, map[string]any{"rate": svc.Rate()})
	})

	r.Get("/api/player", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]any{"rate": svc.Rate()})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
