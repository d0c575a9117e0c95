package httpserver

import (
	"net/http"

	"github.com/ruteri/trainer-intake/registration"
)

type formPage struct {
	Schema       registration.FormSchema
	PhotoUploads bool
}

// HandleForm renders the registration form. Input constraints come from the
// same schema the intake endpoint validates against.
//
// Endpoint: GET / and GET /cadastro
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, http.StatusOK, "form.html", formPage{
		Schema:       registration.Form(),
		PhotoUploads: h.photos != nil,
	})
}
