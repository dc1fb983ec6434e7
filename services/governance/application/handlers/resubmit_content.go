package handlers

import (
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	pkgvalidator "github.com/tocampus/governance/pkg/validator"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// ResubmitContentRequest is the request body for POST /content/{id}/resubmit.
// Omitted fields keep their stored value.
type ResubmitContentRequest struct {
	Title    *string `json:"title,omitempty"    example:"Welcome Fair 2025 (updated)"`
	Body     *string `json:"body,omitempty"`
	Location *string `json:"location,omitempty" example:"Student Union, Hall B"`
} // @name ResubmitContentRequest

// ResubmitContentHandler handles POST /content/{id}/resubmit requests.
type ResubmitContentHandler struct{ base }

// NewResubmitContentHandler returns a ResubmitContentHandler backed by the given services.
func NewResubmitContentHandler(svc *appsvcs.Services, production bool) *ResubmitContentHandler {
	return &ResubmitContentHandler{base{svc: svc, production: production}}
}

// Execute sends edited rejected content back for review.
//
//	@Summary		Resubmit content
//	@Description	Applies the creator's edits to rejected content. Edits that still violate policy are saved and the item stays rejected.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Content ID"	format(uuid)
//	@Param			request	body		ResubmitContentRequest	true	"Edited fields"
//	@Success		200		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	errhttp.PolicyErrorResponse
//	@Router			/content/{id}/resubmit [post]
func (h *ResubmitContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ResubmitContentRequest](w, r)
	if !ok {
		return
	}

	rev := models.ContentRevision{Title: req.Title, Body: req.Body, Location: req.Location}
	item, err := h.svc.Pipeline.Resubmit(r.Context(), id, userID, rev)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContentResponse(item))
}
