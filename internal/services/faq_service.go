package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/greenpass/greenpass-support/internal/models"
	pgrepo "github.com/greenpass/greenpass-support/internal/repositories/postgres"
)

// faqScoreFloor is absolute, not proportional to utterance length.
const faqScoreFloor = 2

type FAQMatch struct {
	Answer     string
	Confidence float64
	SourceID   string
	Category   string
	Actions    []models.MessageAction
}

type FAQService interface {
	// Match scores the knowledge base against the utterance and returns the
	// best entry at or above the floor, or nil. Lookup failures are logged
	// and reported as no-match so the caller can fall through to the AI.
	Match(ctx context.Context, utterance string, lang models.Language) *FAQMatch
}

type faqService struct {
	faqs pgrepo.FAQRepo
	log  *logrus.Logger
}

func NewFAQService(faqs pgrepo.FAQRepo, log *logrus.Logger) FAQService {
	return &faqService{faqs: faqs, log: log}
}

func (s *faqService) Match(ctx context.Context, utterance string, lang models.Language) *FAQMatch {
	const op = "FAQService.Match"

	keywords := strings.Fields(strings.ToLower(utterance))
	if len(keywords) == 0 {
		return nil
	}

	entries, err := s.faqs.ListByLang(ctx, lang)
	if err != nil {
		s.log.WithError(err).WithField("op", op).Warn("faq lookup failed, falling through")
		return nil
	}

	var (
		best      *models.FAQEntry
		bestScore int
	)
	for i := range entries {
		score := scoreEntry(&entries[i], keywords)
		// strictly higher wins; ties keep the first-seen entry
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}

	if best == nil || bestScore < faqScoreFloor {
		return nil
	}

	// Not a probability: repeated keywords in the utterance each score, so
	// the ratio can exceed 1.0. Kept as-is for widget compatibility.
	confidence := float64(bestScore) / float64(len(keywords))

	m := &FAQMatch{
		Answer:     best.Body,
		Confidence: confidence,
		SourceID:   best.ID,
		Category:   best.Category,
	}
	switch best.Category {
	case models.CategoryReservations:
		m.Actions = append(m.Actions, reservationsAction(lang))
	case models.CategoryPayments:
		m.Actions = append(m.Actions, paymentsAction(lang))
	}
	return m
}

func scoreEntry(e *models.FAQEntry, keywords []string) int {
	haystack := strings.ToLower(e.Title + " " + e.Body + " " + strings.Join(e.Tags, " "))
	score := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			score++
		}
	}
	return score
}
