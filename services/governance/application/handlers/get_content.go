package handlers

import (
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
)

// GetContentHandler handles GET /content/{id} requests.
type GetContentHandler struct{ base }

// NewGetContentHandler returns a GetContentHandler backed by the given services.
func NewGetContentHandler(svc *appsvcs.Services, production bool) *GetContentHandler {
	return &GetContentHandler{base{svc: svc, production: production}}
}

// Execute returns the read model of one content item.
//
//	@Summary		Get content
//	@Description	Returns content of the caller's university, served from the cache when possible
//	@Tags			content
//	@Produce		json
//	@Param			id	path		string	true	"Content ID"	format(uuid)
//	@Success		200	{object}	ContentViewResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/content/{id} [get]
func (h *GetContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Reader.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContentView(view))
}
