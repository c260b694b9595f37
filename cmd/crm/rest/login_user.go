package rest

import (
	http "net/http"

	crmerrors "github.com/SR0NAK/insurebharat/cmd/crm/errors"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
)

type LoginUser struct{ API }

func (ep LoginUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var b body
	if err := ep.read(w, r, &b); err != nil {
		return
	}

	if err := ep.valid.Struct(b); err != nil {
		ihttp.ErrBadRequest(ep.logger, w, err)
		return
	}

	sess, err := ep.ctrl.Login(r.Context(), b.Email, b.Password)
	if authErr := crmerrors.AsAuthError(err); authErr != nil {
		ihttp.ErrUnauthorized(w)
		return
	}
	if passwordErr := crmerrors.AsPasswordError(err); passwordErr != nil {
		ihttp.ErrUnauthorized(w)
		return
	}
	if emailErr := crmerrors.AsEmailError(err); emailErr != nil {
		ihttp.ErrUnauthorized(w)
		return
	}
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ihttp.SetSessionCookie(w, sess.ID, ep.cookieOptions)

	ep.write(w, http.StatusCreated, sess)
}
