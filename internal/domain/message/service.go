package message

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"chat-server/internal/domain/user"
	"chat-server/internal/utils/platformerrors"
)

// Service is the query surface over the message store: history fetch, chat
// list aggregation and read marking.
type Service interface {
	GetHistory(ctx context.Context, selfID, otherID string) ([]*Message, error)
	BuildChatList(ctx context.Context, selfID string) ([]*ConversationSummary, error)
	MarkConversationRead(ctx context.Context, otherUserID, selfUserID string) error
}

type service struct {
	store Store
	users user.Store
	log   zerolog.Logger
}

// NewService creates the message query service.
func NewService(store Store, users user.Store, log zerolog.Logger) Service {
	return &service{
		store: store,
		users: users,
		log:   log.With().Str("component", "message-service").Logger(),
	}
}

func (s *service) GetHistory(ctx context.Context, selfID, otherID string) ([]*Message, error) {
	if strings.TrimSpace(otherID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "user id is required", nil)
	}
	return s.store.FindConversation(ctx, selfID, otherID)
}

// BuildChatList returns one entry per known user other than selfID, each with
// the most recent message of that conversation. Entries follow the user
// store's enumeration order, not recency. A failed last-message lookup
// degrades that entry to an empty conversation instead of failing the list.
func (s *service) BuildChatList(ctx context.Context, selfID string) ([]*ConversationSummary, error) {
	others, err := s.users.ListOthers(ctx, selfID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(others))
	for _, other := range others {
		last, err := s.store.FindLastMessage(ctx, selfID, other.ID)
		if err != nil {
			s.log.Warn().Err(err).
				Str("self_id", selfID).
				Str("other_id", other.ID).
				Msg("last message lookup failed, returning empty conversation")
			last = nil
		}
		summaries = append(summaries, &ConversationSummary{
			User:        other.Public(),
			LastMessage: last,
		})
	}
	return summaries, nil
}

func (s *service) MarkConversationRead(ctx context.Context, otherUserID, selfUserID string) error {
	if strings.TrimSpace(otherUserID) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "user id is required", nil)
	}
	return s.store.MarkRead(ctx, otherUserID, selfUserID)
}
