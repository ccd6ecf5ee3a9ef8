package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pocketledger/internal/ledger"
)

func (s *Server) postTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	created, err := s.txSvc.Add(r.Context(), ledger.Transaction{
		Description: req.Description,
		Amount:      amount,
		Date:        req.Date,
		Type:        ledger.TransactionType(req.Type),
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("transaction", "create")
	toJSON(w, http.StatusCreated, s.toTransactionResponse(r.Context(), created))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.txSvc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, s.toTransactionResponse(r.Context(), t))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	t, err := s.txSvc.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, s.toTransactionResponse(r.Context(), t))
}

func (s *Server) patchTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	var req patchTransactionRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	patch := ledger.TransactionPatch{
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		Notes:       req.Notes,
	}
	if req.Amount != nil {
		d, err := parseAmount(*req.Amount)
		if err != nil {
			writeDomainErr(w, err)
			return
		}
		patch.Amount = &d
	}
	if req.Type != nil {
		t := ledger.TransactionType(*req.Type)
		patch.Type = &t
	}
	updated, err := s.txSvc.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("transaction", "update")
	toJSON(w, http.StatusOK, s.toTransactionResponse(r.Context(), updated))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid transaction id")
		return
	}
	if err := s.txSvc.Delete(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	countMutation("transaction", "delete")
	w.WriteHeader(http.StatusNoContent)
}
