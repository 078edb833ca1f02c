package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/dto"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/markup"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/observability"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/pkg/hoiapi"
)

// Chat texts appended by the dashboard itself.
const (
	ChatGreeting = "Hi there! I'm your HOI Assistant. 🤖 I can give you live data or general info. Try asking for:\n" +
		"- **'stats'** or **'summary'** (for form counts)\n" +
		"- **'pending'** or **'alerts'** (for status)"
	ChatNoReply     = "No reply provided."
	chatTypingText  = "Assistant is typing..."
	chatErrorPrefix = "⚠️ **Error:** "
	chatNetworkText = "Sorry, the server is not responding to chatbot queries. Network Error: "
)

// ErrEmptyChatMessage is returned when the submitted text is blank. Nothing is
// appended or sent in that case.
var ErrEmptyChatMessage = errors.New("chat message is empty")

// ChatService manages the per-session assistant transcript.
type ChatService interface {
	// Open greets a session whose transcript is still empty and returns the transcript.
	Open(ctx context.Context, session string) ([]dto.ChatEntry, error)
	// Submit appends the user's message and a typing indicator. The returned
	// exchange names the indicator that Complete resolves.
	Submit(ctx context.Context, session, text string) (ChatExchange, error)
	// Complete asks the assistant for the message preceding the pending
	// indicator, removes the indicator and appends the outcome.
	Complete(ctx context.Context, session, pending string) ([]dto.ChatEntry, error)
	// Send runs Submit and Complete back to back.
	Send(ctx context.Context, session, text string) ([]dto.ChatEntry, error)
	Transcript(ctx context.Context, session string) ([]dto.ChatEntry, error)
}

// ChatExchange is the transcript right after a submission. Pending is the
// handle of the typing indicator still waiting for a reply.
type ChatExchange struct {
	Entries []dto.ChatEntry
	Pending string
}

type chatService struct {
	log       repository.ChatLogRepository
	assistant repository.AssistantClient
	formatter *markup.Formatter
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewChatService creates the chat service.
func NewChatService(log repository.ChatLogRepository, assistant repository.AssistantClient, formatter *markup.Formatter, validate *validator.Validate, logger zerolog.Logger) ChatService {
	if formatter == nil {
		formatter = markup.NewFormatter()
	}
	if validate == nil {
		validate = validator.New()
	}

	return &chatService{
		log:       log,
		assistant: assistant,
		formatter: formatter,
		validator: validate,
		logger:    logger.With().Str("component", "chat_service").Logger(),
		tracer:    otel.Tracer("github.com/santhoshkumar20044/HOI-Activity-New/internal/service/chat"),
	}
}

func (s *chatService) Open(ctx context.Context, session string) ([]dto.ChatEntry, error) {
	entries, err := s.log.List(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if _, err := s.log.Append(ctx, session, models.ChatMessage{Sender: models.SenderBot, Text: ChatGreeting}); err != nil {
			return nil, err
		}
	}
	return s.Transcript(ctx, session)
}

func (s *chatService) Submit(ctx context.Context, session, text string) (ChatExchange, error) {
	request := dto.ChatRequest{Message: strings.TrimSpace(text)}
	if request.Message == "" {
		return ChatExchange{}, ErrEmptyChatMessage
	}
	if err := s.validator.Struct(request); err != nil {
		return ChatExchange{}, err
	}

	if _, err := s.log.Append(ctx, session, models.ChatMessage{Sender: models.SenderUser, Text: request.Message}); err != nil {
		return ChatExchange{}, err
	}
	indicator, err := s.log.Append(ctx, session, models.ChatMessage{Sender: models.SenderBot, Text: chatTypingText, Typing: true})
	if err != nil {
		return ChatExchange{}, err
	}

	entries, err := s.Transcript(ctx, session)
	if err != nil {
		return ChatExchange{}, err
	}
	return ChatExchange{Entries: entries, Pending: indicator}, nil
}

func (s *chatService) Complete(ctx context.Context, session, pending string) ([]dto.ChatEntry, error) {
	messages, err := s.log.List(ctx, session)
	if err != nil {
		return nil, err
	}
	message, ok := pendingMessage(messages, pending)
	if !ok {
		// Already answered or expired.
		return s.Transcript(ctx, session)
	}

	ctx, span := s.tracer.Start(ctx, "chat.send", trace.WithAttributes(attribute.Int("chat.message_length", len(message))))
	defer span.End()

	reply, replyErr := s.assistant.Reply(ctx, message)

	// The indicator goes away exactly once whatever the outcome.
	removed, err := s.log.Remove(ctx, session, pending)
	if err != nil {
		s.logger.Warn().Err(err).Str("session", session).Msg("failed to remove typing indicator")
	} else if !removed {
		return s.Transcript(ctx, session)
	}

	if replyErr != nil {
		span.RecordError(replyErr)
		span.SetStatus(codes.Error, "assistant reply failed")
		observability.ChatExchanges().WithLabelValues(actionOutcomeLabel(replyErr)).Inc()
		if hoiapi.IsSessionExpired(replyErr) {
			return nil, replyErr
		}
		s.logger.Warn().Err(replyErr).Msg("assistant reply failed")
		if _, err := s.log.Append(ctx, session, models.ChatMessage{Sender: models.SenderBot, Text: chatFailureText(replyErr)}); err != nil {
			return nil, err
		}
		return s.Transcript(ctx, session)
	}

	observability.ChatExchanges().WithLabelValues("ok").Inc()
	if strings.TrimSpace(reply) == "" {
		reply = ChatNoReply
	}
	if _, err := s.log.Append(ctx, session, models.ChatMessage{Sender: models.SenderBot, Text: reply}); err != nil {
		return nil, err
	}
	return s.Transcript(ctx, session)
}

func (s *chatService) Send(ctx context.Context, session, text string) ([]dto.ChatEntry, error) {
	exchange, err := s.Submit(ctx, session, text)
	if err != nil {
		return nil, err
	}
	return s.Complete(ctx, session, exchange.Pending)
}

func (s *chatService) Transcript(ctx context.Context, session string) ([]dto.ChatEntry, error) {
	messages, err := s.log.List(ctx, session)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.ChatEntry, 0, len(messages))
	for _, message := range messages {
		entry := dto.ChatEntry{ID: message.ID, Sender: string(message.Sender), Typing: message.Typing}
		if message.Typing {
			entry.HTML = s.formatter.TypingIndicator()
		} else {
			entry.HTML = s.formatter.Format(message.Text)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// pendingMessage returns the user text answered by the typing indicator with
// the given handle.
func pendingMessage(messages []models.ChatMessage, pending string) (string, bool) {
	for i, message := range messages {
		if message.ID != pending || !message.Typing {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if messages[j].Sender == models.SenderUser {
				return messages[j].Text, true
			}
		}
		return "", false
	}
	return "", false
}

func chatFailureText(err error) string {
	if rejected, ok := hoiapi.IsRejected(err); ok {
		return chatErrorPrefix + rejected.Message
	}
	return fmt.Sprintf("%s%s", chatNetworkText, err.Error())
}
