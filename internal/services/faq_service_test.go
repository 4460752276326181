package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpass/greenpass-support/internal/logger"
	"github.com/greenpass/greenpass-support/internal/models"
)

func TestFAQMatch_ThresholdBoundary(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "faq-1", Lang: models.LangEN, Title: "Reservation status", Body: "Track your reservation in the dashboard.", Category: "reservations"},
	}}
	svc := NewFAQService(repo, logger.New())

	// only "reservation" hits: score 1, below the floor
	assert.Nil(t, svc.Match(context.Background(), "reservation please", models.LangEN))

	// "reservation" and "status" both hit: score 2, at the floor
	m := svc.Match(context.Background(), "reservation status", models.LangEN)
	require.NotNil(t, m)
	assert.Equal(t, "faq-1", m.SourceID)
}

func TestFAQMatch_ConfidenceRatio(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "faq-1", Lang: models.LangEN, Title: "Visa application timeline", Body: "Processing takes weeks.", Tags: []string{"visa"}},
	}}
	svc := NewFAQService(repo, logger.New())

	// 4 keywords, 3 of which hit: visa, application, timeline
	m := svc.Match(context.Background(), "visa application timeline zzqq", models.LangEN)
	require.NotNil(t, m)
	assert.InDelta(t, 0.75, m.Confidence, 1e-9)
}

func TestFAQMatch_TieKeepsFirstSeen(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "first", Lang: models.LangEN, Title: "payment methods accepted", Body: ""},
		{ID: "second", Lang: models.LangEN, Title: "payment methods supported", Body: ""},
	}}
	svc := NewFAQService(repo, logger.New())

	m := svc.Match(context.Background(), "payment methods", models.LangEN)
	require.NotNil(t, m)
	assert.Equal(t, "first", m.SourceID)
}

func TestFAQMatch_CategoryActions(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "res", Lang: models.LangEN, Title: "reservation status tracking", Body: "", Category: models.CategoryReservations},
		{ID: "pay", Lang: models.LangEN, Title: "payment failed retries", Body: "", Category: models.CategoryPayments},
		{ID: "misc", Lang: models.LangEN, Title: "tutor sessions booking", Body: "", Category: "tutoring"},
	}}
	svc := NewFAQService(repo, logger.New())

	m := svc.Match(context.Background(), "reservation status tracking", models.LangEN)
	require.NotNil(t, m)
	require.Len(t, m.Actions, 1)
	assert.Equal(t, models.ActionLink, m.Actions[0].Type)
	assert.Equal(t, "/reservations", m.Actions[0].URL)

	m = svc.Match(context.Background(), "tutor sessions booking", models.LangEN)
	require.NotNil(t, m)
	assert.Empty(t, m.Actions)
}

func TestFAQMatch_RepeatedKeywordsEachScore(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "v", Lang: models.LangEN, Title: "visa status", Body: ""},
	}}
	svc := NewFAQService(repo, logger.New())

	// both "visa" tokens score, so 3/3 here; ratio is not a probability
	m := svc.Match(context.Background(), "visa visa status", models.LangEN)
	require.NotNil(t, m)
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
}

func TestFAQMatch_LookupFailureIsNoMatch(t *testing.T) {
	repo := &fakeFAQRepo{err: errors.New("db down")}
	svc := NewFAQService(repo, logger.New())

	assert.Nil(t, svc.Match(context.Background(), "reservation status", models.LangEN))
}

func TestFAQMatch_LanguageIsolated(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "en", Lang: models.LangEN, Title: "reservation status", Body: ""},
	}}
	svc := NewFAQService(repo, logger.New())

	assert.Nil(t, svc.Match(context.Background(), "reservation status", models.LangVI))
}

func TestFAQMatch_EmptyUtterance(t *testing.T) {
	repo := &fakeFAQRepo{entries: []models.FAQEntry{
		{ID: "en", Lang: models.LangEN, Title: "anything", Body: ""},
	}}
	svc := NewFAQService(repo, logger.New())

	assert.Nil(t, svc.Match(context.Background(), "   ", models.LangEN))
}
