package handlers

import (
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
)

// ReviewContentHandler handles GET /content/{id}/review requests.
type ReviewContentHandler struct{ base }

// NewReviewContentHandler returns a ReviewContentHandler backed by the given services.
func NewReviewContentHandler(svc *appsvcs.Services, production bool) *ReviewContentHandler {
	return &ReviewContentHandler{base{svc: svc, production: production}}
}

// Execute returns the policy summary an admin sees before deciding.
//
//	@Summary		Review content
//	@Description	Re-evaluates the stored content and returns the reviewer summary. Admin only.
//	@Tags			content
//	@Produce		json
//	@Param			id	path		string	true	"Content ID"	format(uuid)
//	@Success		200	{object}	ReviewResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/content/{id}/review [get]
func (h *ReviewContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	item, summary, err := h.svc.Pipeline.Review(r.Context(), id, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ReviewResponse{Content: toContentResponse(item), Summary: summary})
}
