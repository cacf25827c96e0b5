package webserver

import (
	"net/http"

	"github.com/unrolled/render"
)

type Handler struct {
	render *render.Render
}

func NewHandler(render *render.Render) *Handler {
	return &Handler{
		render: render,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.render.Text(w, http.StatusOK, http.StatusText(http.StatusOK)); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
