package httpapi

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pocketledger/internal/ledger"
)

func (s *Server) postBudget(w http.ResponseWriter, r *http.Request) {
	var req postBudgetRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	created, err := s.planSvc.AddBudget(r.Context(), ledger.Budget{
		CategoryID: req.CategoryID,
		Amount:     amount,
		Period:     ledger.BudgetPeriod(req.Period),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("budget", "create")
	toJSON(w, http.StatusCreated, toBudgetResponse(created))
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.planSvc.ListBudgets(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	toJSON(w, http.StatusOK, out)
}

// getBudgetProgress reports spent and percentage for the budget's window
// containing "at" (default: now).
func (s *Server) getBudgetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return
	}
	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(w, "invalid at")
			return
		}
		at = t.UTC()
	}
	st, err := s.reportSvc.BudgetProgress(r.Context(), id, at)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toBudgetProgressResponse(st))
}

func (s *Server) patchBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return
	}
	var req patchBudgetRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	patch := ledger.BudgetPatch{
		CategoryID: req.CategoryID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.Amount != nil {
		d, err := parseAmount(*req.Amount)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		patch.Amount = &d
	}
	if req.Period != nil {
		p := ledger.BudgetPeriod(*req.Period)
		patch.Period = &p
	}
	updated, err := s.planSvc.UpdateBudget(r.Context(), id, patch)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("budget", "update")
	toJSON(w, http.StatusOK, toBudgetResponse(updated))
}

func (s *Server) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return
	}
	if err := s.planSvc.DeleteBudget(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("budget", "delete")
	w.WriteHeader(http.StatusNoContent)
}
