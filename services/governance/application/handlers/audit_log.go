package handlers

import (
	"net/http"
	"strconv"

	"github.com/tocampus/governance/pkg/httpx"
	appsvcs "github.com/tocampus/governance/services/governance/application/services"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// ContentAuditHandler handles GET /content/{id}/audit requests.
type ContentAuditHandler struct{ base }

// NewContentAuditHandler returns a ContentAuditHandler backed by the given services.
func NewContentAuditHandler(svc *appsvcs.Services, production bool) *ContentAuditHandler {
	return &ContentAuditHandler{base{svc: svc, production: production}}
}

// Execute returns the audit trail of one item, oldest first.
//
//	@Summary		Content audit trail
//	@Description	Lists every governance action taken on one content item. Admin only.
//	@Tags			audit
//	@Produce		json
//	@Param			id	path		string	true	"Content ID"	format(uuid)
//	@Success		200	{array}		AuditEntryResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Router			/content/{id}/audit [get]
func (h *ContentAuditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Pipeline.AuditTrail(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toAuditEntries(entries))
}

// ListAuditHandler handles GET /audit requests.
type ListAuditHandler struct{ base }

// NewListAuditHandler returns a ListAuditHandler backed by the given services.
func NewListAuditHandler(svc *appsvcs.Services, production bool) *ListAuditHandler {
	return &ListAuditHandler{base{svc: svc, production: production}}
}

// Execute returns one page of the audit log, newest first.
//
//	@Summary		Audit log
//	@Description	Pages through all governance actions. Admin only.
//	@Tags			audit
//	@Produce		json
//	@Param			action			query		string	false	"Filter by action"	Enums(submit, approve, reject, resubmit, publish)
//	@Param			resource_type	query		string	false	"Filter by resource type"	Enums(event, announcement)
//	@Param			page			query		int		false	"1-based page"	default(1)
//	@Param			page_size		query		int		false	"Entries per page"	default(50)	maximum(200)
//	@Success		200				{object}	AuditPageResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		403				{object}	ErrorResponse
//	@Router			/audit [get]
func (h *ListAuditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := models.AuditFilter{
		Action:       models.AuditAction(q.Get("action")),
		ResourceType: q.Get("resource_type"),
	}
	var err error
	if filter.Page, err = intParam(q.Get("page")); err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "page must be an integer"})
		return
	}
	if filter.PageSize, err = intParam(q.Get("page_size")); err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "page_size must be an integer"})
		return
	}

	page, err := h.svc.Pipeline.AuditLog(r.Context(), userID, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, AuditPageResponse{
		Entries:  toAuditEntries(page.Entries),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

// intParam parses an optional query integer; empty means zero.
func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
