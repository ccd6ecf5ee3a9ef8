package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pocketledger/internal/ledger"
)

func (s *Server) postCategory(w http.ResponseWriter, r *http.Request) {
	var req postCategoryRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	created, err := s.planSvc.AddCategory(r.Context(), ledger.Category{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		ParentID: req.ParentID,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("category", "create")
	toJSON(w, http.StatusCreated, toCategoryResponse(created))
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.planSvc.ListCategories(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) patchCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}
	var req patchCategoryRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	updated, err := s.planSvc.UpdateCategory(r.Context(), id, ledger.CategoryPatch{
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
		ParentID: req.ParentID,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("category", "update")
	toJSON(w, http.StatusOK, toCategoryResponse(updated))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid category id")
		return
	}
	if err := s.planSvc.DeleteCategory(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("category", "delete")
	w.WriteHeader(http.StatusNoContent)
}
