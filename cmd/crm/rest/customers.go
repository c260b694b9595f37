package rest

import (
	http "net/http"
)

type Customers struct{ API }

func (ep Customers) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	ep.write(w, http.StatusOK, ep.board.Customers(search))
}

type CustomersSummary struct{ API }

func (ep CustomersSummary) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep.write(w, http.StatusOK, ep.board.CustomerSummary())
}
