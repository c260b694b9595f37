package rest

import (
	errors "errors"
	http "net/http"

	"github.com/SR0NAK/insurebharat/cmd/crm/dashboard"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
)

type Scan struct{ API }

func (ep Scan) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Document string `json:"document" validate:"required"`
	}

	var b body
	if err := ep.read(w, r, &b); err != nil {
		return
	}

	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	result, err := ep.scanner.Scan(r.Context(), b.Document)
	if errors.Is(err, dashboard.ErrNoDocument) {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusOK, result)
}
