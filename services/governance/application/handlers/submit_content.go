package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/httpx"
	pkgvalidator "github.com/tocampus/governance/pkg/validator"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// SubmitContentRequest is the request body for POST /content. Length and
// wording rules are scored by the policy validator, not rejected here.
type SubmitContentRequest struct {
	Kind     string     `json:"kind"      validate:"required,oneofci=EVENT ANNOUNCEMENT" example:"EVENT"`
	Title    string     `json:"title"     validate:"required"                            example:"Welcome Fair 2025"`
	Body     string     `json:"body"                                                     example:"Meet student clubs on the main quad."`
	Location string     `json:"location"                                                 example:"Campus Quad"`
	GroupID  *uuid.UUID `json:"group_id,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"                                      example:"2025-09-14T16:00:00Z"`
} // @name SubmitContentRequest

// SubmitContentHandler handles POST /content requests.
type SubmitContentHandler struct{ base }

// NewSubmitContentHandler returns a SubmitContentHandler backed by the given services.
func NewSubmitContentHandler(svc *appsvcs.Services, production bool) *SubmitContentHandler {
	return &SubmitContentHandler{base{svc: svc, production: production}}
}

// Execute submits content for review.
//
//	@Summary		Submit content
//	@Description	Scores the content against university policy and stores it for review. Non-compliant content is stored with its violations.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitContentRequest	true	"Content to submit"
//	@Success		201		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/content [post]
func (h *SubmitContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SubmitContentRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Pipeline.Submit(r.Context(), appsvcs.SubmitInput{
		Kind:     models.Kind(req.Kind),
		Title:    req.Title,
		Body:     req.Body,
		Location: req.Location,
		GroupID:  req.GroupID,
		StartsAt: req.StartsAt,
	}, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toContentResponse(item))
}
