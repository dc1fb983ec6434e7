package handlers

import (
	"net/http"

	"github.com/tocampus/governance/pkg/httpx"
	pkgvalidator "github.com/tocampus/governance/pkg/validator"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// PublishContentRequest is the request body for POST /content/{id}/publish.
type PublishContentRequest struct {
	ShareTo []string `json:"share_to" validate:"max=4,dive,oneofci=TWITTER FACEBOOK INSTAGRAM LINKEDIN" example:"TWITTER,LINKEDIN"`
} // @name PublishContentRequest

// PublishContentHandler handles POST /content/{id}/publish requests.
type PublishContentHandler struct{ base }

// NewPublishContentHandler returns a PublishContentHandler backed by the given services.
func NewPublishContentHandler(svc *appsvcs.Services, production bool) *PublishContentHandler {
	return &PublishContentHandler{base{svc: svc, production: production}}
}

// Execute publishes approved content and requests the social shares.
//
//	@Summary		Publish content
//	@Description	Publishes approved content to the audience. The creator or an admin may publish.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Content ID"	format(uuid)
//	@Param			request	body		PublishContentRequest	true	"Share targets"
//	@Success		200		{object}	ContentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/content/{id}/publish [post]
func (h *PublishContentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PublishContentRequest](w, r)
	if !ok {
		return
	}

	platforms := make([]models.Platform, len(req.ShareTo))
	for i, p := range req.ShareTo {
		platforms[i] = models.Platform(p)
	}
	item, err := h.svc.Pipeline.Publish(r.Context(), id, userID, platforms)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toContentResponse(item))
}
