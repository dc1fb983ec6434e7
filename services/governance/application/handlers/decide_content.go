package handlers

import (
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	pkgvalidator "github.com/tocampus/governance/pkg/validator"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
)

// ApproveContentRequest is the request body for POST /content/{id}/approve.
type ApproveContentRequest struct {
	Notes string `json:"notes" validate:"max=2000" example:"Looks good"`
} // @name ApproveContentRequest

// RejectContentRequest is the request body for POST /content/{id}/reject.
type RejectContentRequest struct {
	Reason string `json:"reason" validate:"required,notblank,max=2000" example:"Please add the event location"`
} // @name RejectContentRequest

// ApproveContentHandler handles POST /content/{id}/approve requests.
type ApproveContentHandler struct{ base }

// NewApproveContentHandler returns an ApproveContentHandler backed by the given services.
func NewApproveContentHandler(svc *appsvcs.Services, production bool) *ApproveContentHandler {
	return &ApproveContentHandler{base{svc: svc, production: production}}
}

// Execute approves pending content.
//
//	@Summary		Approve content
//	@Description	Re-validates the stored content and approves it. Admin only.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Content ID"	format(uuid)
//	@Param			request	body		ApproveContentRequest	true	"Approval notes"
//	@Success		200		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	errhttp.PolicyErrorResponse
//	@Router			/content/{id}/approve [post]
func (h *ApproveContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ApproveContentRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Pipeline.Approve(r.Context(), id, userID, req.Notes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContentResponse(item))
}

// RejectContentHandler handles POST /content/{id}/reject requests.
type RejectContentHandler struct{ base }

// NewRejectContentHandler returns a RejectContentHandler backed by the given services.
func NewRejectContentHandler(svc *appsvcs.Services, production bool) *RejectContentHandler {
	return &RejectContentHandler{base{svc: svc, production: production}}
}

// Execute rejects pending content.
//
//	@Summary		Reject content
//	@Description	Rejects pending content with a reason the creator will see. Admin only.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Content ID"	format(uuid)
//	@Param			request	body		RejectContentRequest	true	"Rejection reason"
//	@Success		200		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/content/{id}/reject [post]
func (h *RejectContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RejectContentRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Pipeline.Reject(r.Context(), id, userID, req.Reason)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContentResponse(item))
}
