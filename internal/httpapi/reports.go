package httpapi

import (
	"net/http"
	"time"
)

// parseWindow reads optional from/to query params (RFC 3339). The default
// window is the trailing 30 days, matching what the dashboard shows.
func parseWindow(r *http.Request) (from, to time.Time, ok bool) {
	now := time.Now().UTC()
	from, to = now.AddDate(0, 0, -30), now
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, false
		}
		from = t.UTC()
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, false
		}
		to = t.UTC()
	}
	return from, to, true
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(w, "invalid at")
			return
		}
		at = t.UTC()
	}
	sum, err := s.reportSvc.Summary(r.Context(), at)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, summaryResponse{
		TotalBalance: sum.TotalBalance.String(),
		Income:       sum.Income.String(),
		Expenses:     sum.Expenses.String(),
		From:         sum.From,
		To:           sum.To,
	})
}

func (s *Server) getDailyNet(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseWindow(r)
	if !ok {
		badRequest(w, "invalid from/to")
		return
	}
	groups, err := s.reportSvc.DailyNet(r.Context(), from, to)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]dayGroupResponse, 0, len(groups))
	for _, g := range groups {
		txs := make([]transactionResponse, 0, len(g.Transactions))
		for _, t := range g.Transactions {
			txs = append(txs, s.toTransactionResponse(r.Context(), t))
		}
		out = append(out, dayGroupResponse{
			Day:          g.Day.Format("2006-01-02"),
			Net:          g.Net.String(),
			Transactions: txs,
		})
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseWindow(r)
	if !ok {
		badRequest(w, "invalid from/to")
		return
	}
	spends, err := s.reportSvc.SpendingByCategory(r.Context(), from, to)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]categorySpendResponse, 0, len(spends))
	for _, cs := range spends {
		out = append(out, categorySpendResponse{Category: toCategoryRef(cs.Category), Amount: cs.Amount.String()})
	}
	toJSON(w, http.StatusOK, out)
}
