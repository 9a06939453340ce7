package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/texlane/catalog-server-go/internal/service"
)

// SeoHandler exposes the page metadata endpoints.
type SeoHandler struct {
	seo *service.SeoService
}

// NewSeoHandler creates a new SEO handler
func NewSeoHandler(seo *service.SeoService) *SeoHandler {
	return &SeoHandler{seo: seo}
}

func (h *SeoHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

func (h *SeoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.SeoInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.seo.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "SEO entry created", entry)
}

func (h *SeoHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	entries, total, err := h.seo.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("entries", entries, total, p))
}

func (h *SeoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.seo.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", entry)
}

func (h *SeoHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	entry, err := h.seo.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", entry)
}

func (h *SeoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.SeoInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.seo.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "SEO entry updated", entry)
}

func (h *SeoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.seo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "SEO entry deleted", nil)
}
