package rest

import (
	http "net/http"
)

type Analytics struct{ API }

func (ep Analytics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep.write(w, http.StatusOK, ep.board.Analytics())
}
