package rest

import (
	http "net/http"
)

type Renewals struct{ API }

func (ep Renewals) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep.write(w, http.StatusOK, ep.board.Renewals())
}

type RenewalsSummary struct{ API }

func (ep RenewalsSummary) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep.write(w, http.StatusOK, ep.board.RenewalSummary())
}
