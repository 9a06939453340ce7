package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/texlane/catalog-server-go/internal/service"
)

// AttributeHandler exposes the fabric attribute lookup endpoints.
type AttributeHandler struct {
	attrs *service.AttributeService
}

// NewAttributeHandler creates a new attribute handler
func NewAttributeHandler(attrs *service.AttributeService) *AttributeHandler {
	return &AttributeHandler{attrs: attrs}
}

func (h *AttributeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/structures", func(r chi.Router) {
		r.Post("/", h.CreateStructure)
		r.Get("/", h.ListStructures)
		r.Get("/{id}", h.GetStructure)
		r.Put("/{id}", h.UpdateStructure)
		r.Delete("/{id}", h.DeleteStructure)
	})

	r.Route("/substructures", func(r chi.Router) {
		r.Post("/", h.CreateSubstructure)
		r.Get("/", h.ListSubstructures)
		r.Get("/{id}", h.GetSubstructure)
		r.Put("/{id}", h.UpdateSubstructure)
		r.Delete("/{id}", h.DeleteSubstructure)
	})

	r.Route("/suitablefors", func(r chi.Router) {
		r.Post("/", h.CreateSuitablefor)
		r.Get("/", h.ListSuitablefors)
		r.Get("/{id}", h.GetSuitablefor)
		r.Put("/{id}", h.UpdateSuitablefor)
		r.Delete("/{id}", h.DeleteSuitablefor)
	})

	r.Route("/subsuitables", func(r chi.Router) {
		r.Post("/", h.CreateSubsuitable)
		r.Get("/", h.ListSubsuitables)
		r.Get("/{id}", h.GetSubsuitable)
		r.Put("/{id}", h.UpdateSubsuitable)
		r.Delete("/{id}", h.DeleteSubsuitable)
	})

	r.Route("/groupcodes", func(r chi.Router) {
		r.Post("/", h.CreateGroupcode)
		r.Get("/", h.ListGroupcodes)
		r.Get("/{id}", h.GetGroupcode)
		r.Put("/{id}", h.UpdateGroupcode)
		r.Delete("/{id}", h.DeleteGroupcode)
	})

	return r
}

type nameRequest struct {
	Name string `json:"name"`
}

type childRequest struct {
	Name     string `json:"name"`
	ParentID int64  `json:"parentId"`
}

type groupcodeRequest struct {
	Name  string `json:"name"`
	Img   string `json:"img"`
	Video string `json:"video"`
}

// Structures

func (h *AttributeHandler) CreateStructure(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.CreateStructure(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Structure created", item)
}

func (h *AttributeHandler) ListStructures(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	items, total, err := h.attrs.ListStructures(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("structures", items, total, p))
}

func (h *AttributeHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.GetStructure(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

func (h *AttributeHandler) UpdateStructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.UpdateStructure(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Structure updated", item)
}

func (h *AttributeHandler) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.attrs.DeleteStructure(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Structure deleted", nil)
}

// Substructures

func (h *AttributeHandler) CreateSubstructure(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.CreateSubstructure(r.Context(), req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Substructure created", item)
}

func (h *AttributeHandler) ListSubstructures(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	structureID, _ := strconv.ParseInt(r.URL.Query().Get("structureId"), 10, 64)
	items, total, err := h.attrs.ListSubstructures(r.Context(), structureID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("substructures", items, total, p))
}

func (h *AttributeHandler) GetSubstructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.GetSubstructure(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

func (h *AttributeHandler) UpdateSubstructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req childRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.UpdateSubstructure(r.Context(), id, req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Substructure updated", item)
}

func (h *AttributeHandler) DeleteSubstructure(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.attrs.DeleteSubstructure(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Substructure deleted", nil)
}

// Suitablefors

func (h *AttributeHandler) CreateSuitablefor(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.CreateSuitablefor(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Suitablefor created", item)
}

func (h *AttributeHandler) ListSuitablefors(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	items, total, err := h.attrs.ListSuitablefors(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("suitablefors", items, total, p))
}

func (h *AttributeHandler) GetSuitablefor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.GetSuitablefor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

func (h *AttributeHandler) UpdateSuitablefor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.UpdateSuitablefor(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Suitablefor updated", item)
}

func (h *AttributeHandler) DeleteSuitablefor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.attrs.DeleteSuitablefor(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Suitablefor deleted", nil)
}

// Subsuitables

func (h *AttributeHandler) CreateSubsuitable(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.CreateSubsuitable(r.Context(), req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Subsuitable created", item)
}

func (h *AttributeHandler) ListSubsuitables(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	suitableforID, _ := strconv.ParseInt(r.URL.Query().Get("suitableforId"), 10, 64)
	items, total, err := h.attrs.ListSubsuitables(r.Context(), suitableforID, p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("subsuitables", items, total, p))
}

func (h *AttributeHandler) GetSubsuitable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.GetSubsuitable(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

func (h *AttributeHandler) UpdateSubsuitable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req childRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.UpdateSubsuitable(r.Context(), id, req.Name, req.ParentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Subsuitable updated", item)
}

func (h *AttributeHandler) DeleteSubsuitable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.attrs.DeleteSubsuitable(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Subsuitable deleted", nil)
}

// Groupcodes

func (h *AttributeHandler) CreateGroupcode(w http.ResponseWriter, r *http.Request) {
	var req groupcodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.CreateGroupcode(r.Context(), req.Name, req.Img, req.Video)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Groupcode created", item)
}

func (h *AttributeHandler) ListGroupcodes(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	items, total, err := h.attrs.ListGroupcodes(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", listPayload("groupcodes", items, total, p))
}

func (h *AttributeHandler) GetGroupcode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.GetGroupcode(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

func (h *AttributeHandler) UpdateGroupcode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req groupcodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	item, err := h.attrs.UpdateGroupcode(r.Context(), id, req.Name, req.Img, req.Video)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Groupcode updated", item)
}

func (h *AttributeHandler) DeleteGroupcode(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.attrs.DeleteGroupcode(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Groupcode deleted", nil)
}
