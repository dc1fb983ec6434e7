package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tocampus/governance/services/governance/domain/models"
)

// Inbox implements repositories.NotificationSink by keeping every delivered
// notification. Fail marks recipients whose deliveries should error.
type Inbox struct {
	mu        sync.Mutex
	delivered []models.NotificationEvent
	failing   map[uuid.UUID]error
}

// NewInbox returns an empty Inbox.
func NewInbox() *Inbox {
	return &Inbox{failing: make(map[uuid.UUID]error)}
}

// Fail makes every future Send to recipientID return err.
func (b *Inbox) Fail(recipientID uuid.UUID, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[recipientID] = err
}

func (b *Inbox) Send(_ context.Context, n models.NotificationEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err, ok := b.failing[n.RecipientID]; ok {
		return err
	}
	b.delivered = append(b.delivered, n)
	return nil
}

// Delivered returns a copy of every successfully delivered notification.
func (b *Inbox) Delivered() []models.NotificationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.NotificationEvent(nil), b.delivered...)
}

// For returns the notifications delivered to recipientID.
func (b *Inbox) For(recipientID uuid.UUID) []models.NotificationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.NotificationEvent
	for _, n := range b.delivered {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

// AuditLog implements repositories.AuditSink as an append-only slice.
type AuditLog struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
	seq     int64
	err     error
}

// NewAuditLog returns an empty AuditLog.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// FailWith makes every future Append return err. Pass nil to recover.
func (l *AuditLog) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

func (l *AuditLog) Append(_ context.Context, e *models.AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.seq++
	e.Seq = l.seq
	l.entries = append(l.entries, cloneEntry(e))
	return nil
}

// cloneEntry copies e and its details map so stored entries never alias
// caller memory.
func cloneEntry(e *models.AuditEntry) *models.AuditEntry {
	c := *e
	c.Details = maps.Clone(e.Details)
	return &c
}

func (l *AuditLog) ListByResource(_ context.Context, resourceID uuid.UUID) ([]*models.AuditEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*models.AuditEntry
	for _, e := range l.entries {
		if e.ResourceID == resourceID {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

func (l *AuditLog) Query(_ context.Context, f models.AuditFilter) (models.AuditPage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []*models.AuditEntry
	for _, e := range l.entries {
		if f.Matches(e) {
			matched = append(matched, cloneEntry(e))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Seq > matched[j].Seq })

	page := models.AuditPage{
		Entries:  []*models.AuditEntry{},
		Total:    len(matched),
		Page:     f.Page,
		PageSize: f.PageSize,
	}
	start := min(f.Offset(), len(matched))
	end := min(start+f.PageSize, len(matched))
	page.Entries = append(page.Entries, matched[start:end]...)
	return page, nil
}
