package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/utils"
)

// In-memory repository fakes standing in for Postgres/Mongo.

type fakeConversationRepo struct {
	mu                sync.Mutex
	convs             map[string]*models.Conversation
	failMarkHandedOff bool
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]*models.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.convs[c.ID] = &cp
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) LatestOpenByUser(_ context.Context, userID string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.Conversation
	for _, c := range r.convs {
		if c.UserID != userID || c.Status != models.StatusOpen {
			continue
		}
		if best == nil || c.LastActivity.After(best.LastActivity) {
			best = c
		}
	}
	if best == nil {
		return nil, utils.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *fakeConversationRepo) ListByStatus(_ context.Context, status models.ConversationStatus, limit int) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Conversation
	for _, c := range r.convs {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeConversationRepo) SetLanguage(_ context.Context, id string, lang models.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return utils.ErrNotFound
	}
	c.Language = lang
	c.LastActivity = time.Now().UTC()
	return nil
}

func (r *fakeConversationRepo) SetStatus(_ context.Context, id string, status models.ConversationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return utils.ErrNotFound
	}
	c.Status = status
	c.LastActivity = time.Now().UTC()
	return nil
}

func (r *fakeConversationRepo) MarkHandedOff(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMarkHandedOff {
		return errors.New("conversation store unavailable")
	}
	c, ok := r.convs[id]
	if !ok {
		return utils.ErrNotFound
	}
	c.Status = models.StatusHandedOff
	c.EscalationCount++
	c.LastActivity = time.Now().UTC()
	return nil
}

func (r *fakeConversationRepo) TouchActivity(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.convs[id]; ok {
		c.LastActivity = at
	}
	return nil
}

type fakeMessageRepo struct {
	mu         sync.Mutex
	msgs       []models.Message
	failAppend bool
	// when > 0, appends fail once the conversation already holds this many
	// messages; lets tests break only the reply append, not the user echo
	failWhenCountAtLeast int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Append(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend {
		return errors.New("transcript store unavailable")
	}
	if r.failWhenCountAtLeast > 0 {
		n := 0
		for _, prev := range r.msgs {
			if prev.ConversationID == m.ConversationID {
				n++
			}
		}
		if n >= r.failWhenCountAtLeast {
			return errors.New("transcript store unavailable")
		}
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string, limit int64) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) CountByConversation(_ context.Context, conversationID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			n++
		}
	}
	return n, nil
}

type fakeFAQRepo struct {
	entries []models.FAQEntry
	err     error
}

func (r *fakeFAQRepo) ListByLang(_ context.Context, lang models.Language) ([]models.FAQEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.FAQEntry
	for _, e := range r.entries {
		if e.Lang == lang {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeProvider is a scriptable llm.Provider.
type fakeProvider struct {
	answer string
	err    error
	block  chan struct{} // when set, Answer waits for it (or ctx) before returning
}

func (p *fakeProvider) Answer(ctx context.Context, _ string) (string, error) {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return p.answer, p.err
}

func (p *fakeProvider) Close() error { return nil }
