package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greenpass/greenpass-support/internal/models"
	"github.com/greenpass/greenpass-support/internal/providers/llm"
)

const (
	// Fixed confidences: the generation API exposes no per-answer signal, so
	// a model answer is always 0.7 and the degraded canned path is 0.3.
	aiConfidence       = 0.7
	degradedConfidence = 0.3

	defaultAnswerTimeout = 20 * time.Second
)

type AIReply struct {
	Text       string
	Confidence float64
	Actions    []models.MessageAction
}

type ResponderService interface {
	// Respond never fails: provider errors and timeouts degrade into a
	// canned reply with reduced confidence.
	Respond(ctx context.Context, utterance string, role models.Role, lang models.Language) AIReply
}

type responderService struct {
	provider llm.Provider
	timeout  time.Duration
	log      *logrus.Logger
}

func NewResponderService(provider llm.Provider, timeout time.Duration, log *logrus.Logger) ResponderService {
	if timeout <= 0 {
		timeout = defaultAnswerTimeout
	}
	return &responderService{provider: provider, timeout: timeout, log: log}
}

func (s *responderService) Respond(ctx context.Context, utterance string, role models.Role, lang models.Language) AIReply {
	const op = "ResponderService.Respond"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Answer(ctx, buildPrompt(utterance, role, lang))
	if err != nil {
		s.log.WithError(err).WithField("op", op).Warn("llm call failed, serving degraded reply")
		return AIReply{
			Text:       aiApologyText(lang),
			Confidence: degradedConfidence,
			Actions:    []models.MessageAction{escalateAction(lang)},
		}
	}

	if text == "" {
		return AIReply{
			Text:       needMoreContextText(lang),
			Confidence: aiConfidence,
			Actions:    []models.MessageAction{escalateAction(lang)},
		}
	}

	return AIReply{
		Text:       text,
		Confidence: aiConfidence,
		Actions:    []models.MessageAction{escalateAction(lang)},
	}
}

func buildPrompt(utterance string, role models.Role, lang models.Language) string {
	langName := "English"
	if lang == models.LangVI {
		langName = "Vietnamese"
	}
	return fmt.Sprintf(
		"You are the support assistant for GreenPass, a study-abroad marketplace. "+
			"The user is a %s. Answer the question below concisely (under 200 words) in %s. "+
			"If you are not sure of the answer, suggest contacting human support instead of guessing.\n\nQuestion: %s",
		role, langName, utterance,
	)
}
