package rest

import (
	http "net/http"

	ihttp "github.com/SR0NAK/insurebharat/internal/http"
)

type User struct{ API }

func (ep User) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := ep.session(r.Context(), w)
	if !ok {
		return
	}

	user, err := ep.ctrl.User(r.Context(), sess.User.ID)
	if err != nil {
		ihttp.ErrInternal(ep.logger, w, err)
		return
	}

	ep.write(w, http.StatusOK, user)
}
