package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/texlane/catalog-server-go/internal/service"
)

// GeoHandler exposes the country/state/city taxonomy endpoints.
type GeoHandler struct {
	geo *service.GeoService
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geo *service.GeoService) *GeoHandler {
	return &GeoHandler{geo: geo}
}

func (h *GeoHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/countries", func(r chi.Router) {
		r.Post("/", h.CreateCountry)
		r.Get("/", h.ListCountries)
		r.Get("/slug/{slug}", h.GetCountryBySlug)
		r.Get("/{id}", h.GetCountry)
		r.Put("/{id}", h.UpdateCountry)
		r.Delete("/{id}", h.DeleteCountry)
	})

	r.Route("/states", func(r chi.Router) {
		r.Post("/", h.CreateState)
		r.Get("/", h.ListStates)
		r.Get("/slug/{slug}", h.GetStateBySlug)
		r.Get("/{id}", h.GetState)
		r.Put("/{id}", h.UpdateState)
		r.Delete("/{id}", h.DeleteState)
	})

	r.Route("/cities", func(r chi.Router) {
		r.Post("/", h.CreateCity)
		r.Get("/", h.ListCities)
		r.Get("/slug/{slug}", h.GetCityBySlug)
		r.Get("/{id}", h.GetCity)
		r.Put("/{id}", h.UpdateCity)
		r.Delete("/{id}", h.DeleteCity)
	})

	return r
}

// Countries

func (h *GeoHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var in service.CountryInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	country, err := h.geo.CreateCountry(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Country created", country)
}

func (h *GeoHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	countries, total, err := h.geo.ListCountries(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("countries", countries, total, p))
}

func (h *GeoHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	country, err := h.geo.GetCountry(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", country)
}

func (h *GeoHandler) GetCountryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	country, err := h.geo.GetCountryBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", country)
}

func (h *GeoHandler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.CountryInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	country, err := h.geo.UpdateCountry(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Country updated", country)
}

func (h *GeoHandler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.geo.DeleteCountry(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Country deleted", nil)
}

// States

func (h *GeoHandler) CreateState(w http.ResponseWriter, r *http.Request) {
	var in service.StateInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	state, err := h.geo.CreateState(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "State created", state)
}

func (h *GeoHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	countryID, _ := strconv.ParseInt(r.URL.Query().Get("countryId"), 10, 64)

	states, total, err := h.geo.ListStates(r.Context(), countryID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("states", states, total, p))
}

func (h *GeoHandler) GetState(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := h.geo.GetState(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", state)
}

func (h *GeoHandler) GetStateBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	state, err := h.geo.GetStateBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", state)
}

func (h *GeoHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.StateInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	state, err := h.geo.UpdateState(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "State updated", state)
}

func (h *GeoHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.geo.DeleteState(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "State deleted", nil)
}

// Cities

func (h *GeoHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var in service.CityInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	city, err := h.geo.CreateCity(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "City created", city)
}

func (h *GeoHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	stateID, _ := strconv.ParseInt(r.URL.Query().Get("stateId"), 10, 64)

	cities, total, err := h.geo.ListCities(r.Context(), stateID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("cities", cities, total, p))
}

func (h *GeoHandler) GetCity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	city, err := h.geo.GetCity(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", city)
}

func (h *GeoHandler) GetCityBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	city, err := h.geo.GetCityBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", city)
}

func (h *GeoHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.CityInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	city, err := h.geo.UpdateCity(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "City updated", city)
}

func (h *GeoHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.geo.DeleteCity(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "City deleted", nil)
}
