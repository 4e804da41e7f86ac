// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aic_catalog/internal/app"
	"aic_catalog/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/galleries", h.listGalleries)
	s.mux.Get("/v1/objects/{id}", h.getObject)
	s.mux.Get("/v1/tours", h.listTours)
	s.mux.Get("/v1/tours/{id}", h.getTour)
	s.mux.Get("/v1/exhibitions", h.listExhibitions)
	s.mux.Get("/v1/events", h.listEvents)
}

func selectLang(al string) domain.Language {
	s := strings.ToLower(al)
	for _, lang := range domain.Languages[1:] {
		if strings.HasPrefix(s, string(lang)) {
			return lang
		}
	}
	return domain.English
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any, lang domain.Language) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	if lang != "" {
		w.Header().Set("Content-Language", string(lang))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func langFromRequest(r *http.Request) domain.Language {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return selectLang(lang)
	}
	return selectLang(r.Header.Get("Accept-Language"))
}

func (h *Handlers) getTour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	lang := langFromRequest(r)
	resp, err := h.Q.GetTour(r.Context(), id, lang)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "tour not found")
		return
	}
	writeJSON(w, r, resp, resp.Language)
}

func (h *Handlers) listTours(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	lang := langFromRequest(r)
	out, err := h.Q.ListTours(r.Context(), lang, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list tours")
		return
	}
	writeJSON(w, r, out, lang)
}

func (h *Handlers) getObject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	resp, err := h.Q.GetObject(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "object not found")
		return
	}
	writeJSON(w, r, resp, "")
}

func (h *Handlers) listGalleries(w http.ResponseWriter, r *http.Request) {
	var floor *int
	if fs := r.URL.Query().Get("floor"); fs != "" {
		f, err := strconv.Atoi(fs)
		if err != nil || f < 0 || f >= domain.TotalFloors {
			writeProblem(w, http.StatusBadRequest, "Invalid floor", "floor must be an integer between 0 and 3")
			return
		}
		floor = &f
	}
	out, err := h.Q.ListGalleries(r.Context(), floor)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list galleries")
		return
	}
	writeJSON(w, r, out, "")
}

func (h *Handlers) listExhibitions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListExhibitions(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list exhibitions")
		return
	}
	writeJSON(w, r, out, "")
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListEvents(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list events")
		return
	}
	writeJSON(w, r, out, "")
}
