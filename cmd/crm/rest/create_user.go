package rest

import (
	errors "errors"
	http "net/http"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/identity"
	"github.com/SR0NAK/insurebharat/internal/session"
)

type CreateUser struct{ API }

func (ep CreateUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,password"`
		Redirect  string `json:"redirect" validate:"omitempty,url"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Company   string `json:"company"`
	}

	var b body
	if err := ep.read(w, r, &b); err != nil {
		return
	}

	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	err := ep.ctrl.Register(
		r.Context(),
		identity.SignUpInput{
			Email:          b.Email,
			Password:       b.Password,
			RedirectTarget: b.Redirect,
			Profile: session.Profile{
				FirstName: b.FirstName,
				LastName:  b.LastName,
				Phone:     b.Phone,
				Company:   b.Company,
			},
		},
	)
	if errors.Is(err, crmerrors.ErrEmailAlreadyInUse) {
		ihttp.ErrConflict(w)
		return
	}
	if emailErr := crmerrors.AsEmailError(err); emailErr != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if passwordErr := crmerrors.AsPasswordError(err); passwordErr != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusCreated, nil)
}
