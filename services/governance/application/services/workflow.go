package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tocampus/governance/pkg/logger"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
	"github.com/tocampus/governance/services/governance/domain/repositories"
	domainsvcs "github.com/tocampus/governance/services/governance/domain/services"
)

// SubmitInput is the raw content a user submits for review.
type SubmitInput struct {
	Kind     models.Kind
	Title    string
	Body     string
	Location string
	GroupID  *uuid.UUID
	StartsAt *time.Time
}

// Outcome is the result of a successful workflow call: the committed item
// and every transition written, in commit order.
type Outcome struct {
	Item         *models.ContentItem
	Transitions  []models.Transition
	AutoApproved bool
}

// ApprovalWorkflow drives a ContentItem through its lifecycle. Every write is
// a compare-and-write against the version that was read, so two concurrent
// calls on the same item cannot both commit.
type ApprovalWorkflow struct {
	store       repositories.ContentStore
	identity    repositories.IdentityProvider
	validator   *domainsvcs.PolicyValidator
	log         logger.Logger
	metrics     *Metrics
	autoApprove bool
	now         func() time.Time
}

// WorkflowOption configures an ApprovalWorkflow.
type WorkflowOption func(*ApprovalWorkflow)

// WithAutoApprove enables approval by the system actor for auto-approvable submissions.
func WithAutoApprove(enabled bool) WorkflowOption {
	return func(w *ApprovalWorkflow) { w.autoApprove = enabled }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *ApprovalWorkflow) { w.now = now }
}

// WithMetrics records policy scores on m.
func WithMetrics(m *Metrics) WorkflowOption {
	return func(w *ApprovalWorkflow) { w.metrics = m }
}

// NewApprovalWorkflow returns a workflow over the given collaborators.
func NewApprovalWorkflow(store repositories.ContentStore, identity repositories.IdentityProvider, validator *domainsvcs.PolicyValidator, log logger.Logger, opts ...WorkflowOption) *ApprovalWorkflow {
	w := &ApprovalWorkflow{
		store:     store,
		identity:  identity,
		validator: validator,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit creates a PENDING item scored by the validator. A non-compliant
// submission is still stored; reviewers see its violations.
func (w *ApprovalWorkflow) Submit(ctx context.Context, in SubmitInput, creatorID uuid.UUID) (*Outcome, error) {
	actor, err := w.actor(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanSubmit() {
		return nil, fmt.Errorf("%w: role %s cannot submit content", govdomain.ErrUnauthorizedActor, actor.Role)
	}

	kind, err := models.ParseKind(string(in.Kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrValidation, err)
	}
	fields := models.ContentFields{
		Kind:     kind,
		Title:    strings.TrimSpace(in.Title),
		Body:     strings.TrimSpace(in.Body),
		Location: strings.TrimSpace(in.Location),
	}
	verdict := w.evaluate(ctx, fields)

	item, err := models.NewContentItem(actor.UniversityID, creatorID, in.GroupID, fields, in.StartsAt, verdict)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrValidation, err)
	}

	submitted := models.Transition{
		Action:  models.ActionSubmit,
		To:      models.StatePending,
		ActorID: creatorID,
		At:      item.CreatedAt,
	}
	if err := w.store.Create(ctx, item, submitted); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	out := &Outcome{Item: item, Transitions: []models.Transition{submitted}}

	if !w.autoApprove || !verdict.CanAutoApprove() {
		return out, nil
	}

	approved := item.Clone()
	at := w.now()
	notes := fmt.Sprintf("Automatically approved with compliance score %d", verdict.Score)
	if err := approved.MarkApproved(models.SystemActorID, notes, at); err != nil {
		return nil, fmt.Errorf("auto-approve: %w", err)
	}
	t := models.Transition{
		Action:  models.ActionApprove,
		From:    models.StatePending,
		To:      models.StateApproved,
		ActorID: models.SystemActorID,
		At:      at,
	}
	if err := w.store.Update(ctx, approved, item.Version, t); err != nil {
		// The submission is committed; a reviewer can still approve it by hand.
		w.log.WarnContext(ctx, "auto-approval not committed",
			"error", err,
			"content_id", item.ID,
		)
		return out, nil
	}
	out.Item = approved
	out.Transitions = append(out.Transitions, t)
	out.AutoApproved = true
	return out, nil
}

// Approve re-validates the stored fields and moves a PENDING item to APPROVED.
func (w *ApprovalWorkflow) Approve(ctx context.Context, contentID, actorID uuid.UUID, notes string) (*Outcome, error) {
	actor, item, err := w.load(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanApprove() {
		return nil, fmt.Errorf("%w: role %s cannot approve content", govdomain.ErrUnauthorizedActor, actor.Role)
	}
	if err := requireState(item, models.StatePending, "approve"); err != nil {
		return nil, err
	}

	fields := item.Fields()
	verdict := w.evaluate(ctx, fields)
	if !verdict.IsCompliant {
		return nil, &govdomain.PolicyViolationError{Score: verdict.Score, Violations: verdict.Violations}
	}

	at := w.now()
	next := item.Clone()
	next.Revise(fields, verdict, at)
	if err := next.MarkApproved(actorID, strings.TrimSpace(notes), at); err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrInvalidTransition, err)
	}
	return w.commit(ctx, item, next, models.ActionApprove, actorID, at)
}

// Reject moves a PENDING item to REJECTED. The reason is required.
func (w *ApprovalWorkflow) Reject(ctx context.Context, contentID, actorID uuid.UUID, reason string) (*Outcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", govdomain.ErrValidation)
	}

	actor, item, err := w.load(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanApprove() {
		return nil, fmt.Errorf("%w: role %s cannot reject content", govdomain.ErrUnauthorizedActor, actor.Role)
	}
	if err := requireState(item, models.StatePending, "reject"); err != nil {
		return nil, err
	}

	next := item.Clone()
	at := w.now()
	if err := next.MarkRejected(reason, at); err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrInvalidTransition, err)
	}
	return w.commit(ctx, item, next, models.ActionReject, actorID, at)
}

// Publish moves an APPROVED item to PUBLISHED. The creator or an admin may publish.
func (w *ApprovalWorkflow) Publish(ctx context.Context, contentID, actorID uuid.UUID, shareTo []models.Platform) (*Outcome, error) {
	platforms, err := normalizePlatforms(shareTo)
	if err != nil {
		return nil, err
	}

	actor, item, err := w.load(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanPublish(item.IsCreator(actorID)) {
		return nil, fmt.Errorf("%w: only the creator or an admin can publish", govdomain.ErrUnauthorizedActor)
	}
	if err := requireState(item, models.StateApproved, "publish"); err != nil {
		return nil, err
	}

	next := item.Clone()
	at := w.now()
	if err := next.MarkPublished(platforms, at); err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrInvalidTransition, err)
	}
	return w.commit(ctx, item, next, models.ActionPublish, actorID, at)
}

// Resubmit merges the creator's edits into a REJECTED item and re-validates.
// If the edited content still fails policy the edits and the fresh verdict
// are stored, the item stays REJECTED and a *PolicyViolationError is returned.
func (w *ApprovalWorkflow) Resubmit(ctx context.Context, contentID, creatorID uuid.UUID, rev models.ContentRevision) (*Outcome, error) {
	_, item, err := w.load(ctx, contentID, creatorID)
	if err != nil {
		return nil, err
	}
	if !item.IsCreator(creatorID) {
		return nil, fmt.Errorf("%w: only the creator can resubmit", govdomain.ErrUnauthorizedActor)
	}
	if err := requireState(item, models.StateRejected, "resubmit"); err != nil {
		return nil, err
	}

	fields := trimRevision(rev).Apply(item.Fields())
	verdict := w.evaluate(ctx, fields)

	at := w.now()
	next := item.Clone()
	next.Revise(fields, verdict, at)

	if !verdict.IsCompliant {
		revised := models.Transition{From: models.StateRejected, To: models.StateRejected, ActorID: creatorID, At: at}
		if err := w.store.Update(ctx, next, item.Version, revised); err != nil {
			return nil, storeErr(err, "store revision")
		}
		return nil, &govdomain.PolicyViolationError{Score: verdict.Score, Violations: verdict.Violations}
	}

	if err := next.MarkResubmitted(at); err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrInvalidTransition, err)
	}
	return w.commit(ctx, item, next, models.ActionResubmit, creatorID, at)
}

// Review evaluates the stored fields for an admin reviewer. Nothing is written.
func (w *ApprovalWorkflow) Review(ctx context.Context, contentID, actorID uuid.UUID) (*models.ContentItem, domainsvcs.ApprovalSummary, error) {
	actor, item, err := w.load(ctx, contentID, actorID)
	if err != nil {
		return nil, domainsvcs.ApprovalSummary{}, err
	}
	if !actor.Role.CanApprove() {
		return nil, domainsvcs.ApprovalSummary{}, fmt.Errorf("%w: role %s cannot review content", govdomain.ErrUnauthorizedActor, actor.Role)
	}
	fields := item.Fields()
	return item, domainsvcs.Summarize(w.validator.Evaluate(fields), fields), nil
}

// Actor resolves userID through the identity provider.
func (w *ApprovalWorkflow) Actor(ctx context.Context, userID uuid.UUID) (*models.Actor, error) {
	return w.actor(ctx, userID)
}

func (w *ApprovalWorkflow) commit(ctx context.Context, prev, next *models.ContentItem, action models.AuditAction, actorID uuid.UUID, at time.Time) (*Outcome, error) {
	t := models.Transition{Action: action, From: prev.State, To: next.State, ActorID: actorID, At: at}
	if err := w.store.Update(ctx, next, prev.Version, t); err != nil {
		return nil, storeErr(err, action)
	}
	return &Outcome{Item: next, Transitions: []models.Transition{t}}, nil
}

func (w *ApprovalWorkflow) evaluate(ctx context.Context, f models.ContentFields) models.ValidationVerdict {
	v := w.validator.Evaluate(f)
	w.metrics.scored(ctx, v)
	return v
}

func (w *ApprovalWorkflow) actor(ctx context.Context, userID uuid.UUID) (*models.Actor, error) {
	actor, err := w.identity.Lookup(ctx, userID)
	if err != nil {
		if errors.Is(err, govdomain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", govdomain.ErrUnauthorizedActor, err)
		}
		return nil, fmt.Errorf("lookup actor: %w", err)
	}
	return actor, nil
}

// load resolves the actor and the item, and checks they share a university.
func (w *ApprovalWorkflow) load(ctx context.Context, contentID, actorID uuid.UUID) (*models.Actor, *models.ContentItem, error) {
	actor, err := w.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	item, err := w.store.Get(ctx, contentID)
	if err != nil {
		if errors.Is(err, govdomain.ErrContentNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("get content: %w", err)
	}
	if item.UniversityID != actor.UniversityID {
		return nil, nil, fmt.Errorf("%w: content belongs to another university", govdomain.ErrUnauthorizedActor)
	}
	return actor, item, nil
}

func requireState(item *models.ContentItem, want models.LifecycleState, op string) error {
	if item.State != want {
		return fmt.Errorf("%w: cannot %s content in state %s", govdomain.ErrInvalidTransition, op, item.State)
	}
	return nil
}

// storeErr reports a lost compare-and-write as an invalid transition.
func storeErr(err error, op any) error {
	if errors.Is(err, govdomain.ErrVersionConflict) {
		return fmt.Errorf("%w: content changed concurrently: %w", govdomain.ErrInvalidTransition, err)
	}
	if errors.Is(err, govdomain.ErrContentNotFound) {
		return err
	}
	return fmt.Errorf("%v content: %w", op, err)
}

func normalizePlatforms(in []models.Platform) ([]models.Platform, error) {
	names := make([]string, len(in))
	for i, p := range in {
		names[i] = string(p)
	}
	out, err := models.ParsePlatforms(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", govdomain.ErrValidation, err)
	}
	return out, nil
}

func trimRevision(rev models.ContentRevision) models.ContentRevision {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}
	return models.ContentRevision{Title: trim(rev.Title), Body: trim(rev.Body), Location: trim(rev.Location)}
}
