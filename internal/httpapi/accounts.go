package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"pocketledger/internal/ledger"
)

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	var req postAccountRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	opening := decimal.Zero
	if req.Balance != "" {
		d, err := parseAmount(req.Balance)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		opening = d
	}
	created, err := s.accountSvc.Create(r.Context(), ledger.Account{
		Name:    req.Name,
		Type:    ledger.AccountType(req.Type),
		Balance: opening,
		Color:   req.Color,
		Icon:    req.Icon,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("account", "create")
	toJSON(w, http.StatusCreated, toAccountResponse(created))
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accountSvc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	a, err := s.accountSvc.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) patchAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	var req patchAccountRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	patch := ledger.AccountPatch{Name: req.Name, Color: req.Color, Icon: req.Icon}
	if req.Type != nil {
		t := ledger.AccountType(*req.Type)
		patch.Type = &t
	}
	updated, err := s.accountSvc.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("account", "update")
	toJSON(w, http.StatusOK, toAccountResponse(updated))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid account id")
		return
	}
	if err := s.accountSvc.Delete(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("account", "delete")
	w.WriteHeader(http.StatusNoContent)
}
