package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// systemPrompt is the fixed instruction sent with every chat request.
const systemPrompt = "You are an AI health assistant for a website called 'HealthTrack+'. " +
	"Your role is to help customers by providing general health information, " +
	"suggesting lifestyle improvements, and offering preliminary guidance based on symptoms. " +
	"CRITICAL: You are an AI, not a doctor. Always include a disclaimer that you cannot provide " +
	"definitive medical advice and they should consult a healthcare professional for serious concerns. " +
	"Be polite, professional, and empathetic. Keep responses concise, clear, and easy to read. " +
	"If asked about specific medical conditions, provide general information but always recommend " +
	"consulting with a qualified healthcare provider."

// DefaultChatModels is the ordered fallback list tried when the config
// does not override it.
var DefaultChatModels = []string{
	"google/gemini-2.0-flash-lite-preview-02-05:free",
	"meta-llama/llama-3.2-3b-instruct:free",
	"mistralai/mistral-small-24b-instruct-2501:free",
	"openai/gpt-4o-mini",
	"openai/gpt-3.5-turbo",
}

// ChatServiceImpl implements domain.ChatService: each model in the
// ordered list is tried once; the first success wins and the last
// error is propagated when all fail.
type ChatServiceImpl struct {
	client domain.CompletionClient
	models []string
}

// NewChatService creates a new chat proxy service
func NewChatService(client domain.CompletionClient, models []string) domain.ChatService {
	if len(models) == 0 {
		models = DefaultChatModels
	}
	return &ChatServiceImpl{
		client: client,
		models: models,
	}
}

// Ask implements domain.ChatService
func (s *ChatServiceImpl) Ask(ctx context.Context, message string) (string, error) {
	var lastErr error

	for _, model := range s.models {
		response, err := s.client.Complete(ctx, model, systemPrompt, message)
		if err != nil {
			if errors.Is(err, domain.ErrChatNotConfigured) {
				return "", err
			}
			lastErr = err
			log.Warn().Err(err).Str("model", model).Msg("chat: model failed, trying next")
			continue
		}
		return response, nil
	}

	if lastErr == nil {
		lastErr = domain.ErrUpstreamUnavailable
	}
	return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, lastErr)
}
