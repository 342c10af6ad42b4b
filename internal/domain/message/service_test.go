package message_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chat-server/internal/domain/message"
	"chat-server/internal/domain/user"
	"chat-server/internal/utils/platformerrors"
)

type MockStore struct {
	CreateFunc           func(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*message.Message, error)
	FindConversationFunc func(ctx context.Context, userA, userB string) ([]*message.Message, error)
	FindLastMessageFunc  func(ctx context.Context, userA, userB string) (*message.Message, error)
	MarkReadFunc         func(ctx context.Context, otherUserID, selfUserID string) error
}

func (m *MockStore) Create(ctx context.Context, senderID, receiverID, content string, timestamp time.Time) (*message.Message, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, senderID, receiverID, content, timestamp)
	}
	return nil, nil
}

func (m *MockStore) FindConversation(ctx context.Context, userA, userB string) ([]*message.Message, error) {
	if m.FindConversationFunc != nil {
		return m.FindConversationFunc(ctx, userA, userB)
	}
	return nil, nil
}

func (m *MockStore) FindLastMessage(ctx context.Context, userA, userB string) (*message.Message, error) {
	if m.FindLastMessageFunc != nil {
		return m.FindLastMessageFunc(ctx, userA, userB)
	}
	return nil, nil
}

func (m *MockStore) MarkRead(ctx context.Context, otherUserID, selfUserID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, otherUserID, selfUserID)
	}
	return nil
}

type MockUserStore struct {
	CreateFunc      func(ctx context.Context, u *user.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*user.User, error)
	ListOthersFunc  func(ctx context.Context, selfID string) ([]*user.User, error)
}

func (m *MockUserStore) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserStore) ListOthers(ctx context.Context, selfID string) ([]*user.User, error) {
	if m.ListOthersFunc != nil {
		return m.ListOthersFunc(ctx, selfID)
	}
	return nil, nil
}

func TestGetHistoryDelegates(t *testing.T) {
	want := []*message.Message{
		{ID: "m1", SenderID: "alice", ReceiverID: "bob", Content: "hi"},
		{ID: "m2", SenderID: "bob", ReceiverID: "alice", Content: "hey"},
	}
	store := &MockStore{
		FindConversationFunc: func(ctx context.Context, userA, userB string) ([]*message.Message, error) {
			if userA != "alice" || userB != "bob" {
				t.Fatalf("unexpected pair (%s, %s)", userA, userB)
			}
			return want, nil
		},
	}
	svc := message.NewService(store, &MockUserStore{}, zerolog.Nop())

	got, err := svc.GetHistory(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" {
		t.Fatalf("unexpected history: %v", got)
	}
}

func TestGetHistoryRequiresOtherID(t *testing.T) {
	svc := message.NewService(&MockStore{}, &MockUserStore{}, zerolog.Nop())

	_, err := svc.GetHistory(context.Background(), "alice", "  ")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error type, got %v", err)
	}
}

func TestBuildChatListOneEntryPerUser(t *testing.T) {
	users := &MockUserStore{
		ListOthersFunc: func(ctx context.Context, selfID string) ([]*user.User, error) {
			return []*user.User{
				{ID: "bob", Username: "bob", Email: "bob@example.com"},
				{ID: "carol", Username: "carol", Email: "carol@example.com"},
			}, nil
		},
	}
	store := &MockStore{
		FindLastMessageFunc: func(ctx context.Context, userA, userB string) (*message.Message, error) {
			if userB == "bob" {
				return &message.Message{ID: "m1", SenderID: "bob", ReceiverID: "alice", Content: "yo"}, nil
			}
			return nil, nil
		},
	}
	svc := message.NewService(store, users, zerolog.Nop())

	list, err := svc.BuildChatList(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].User.ID != "bob" || list[1].User.ID != "carol" {
		t.Fatalf("expected store enumeration order, got %s then %s", list[0].User.ID, list[1].User.ID)
	}
	if list[0].LastMessage == nil || list[0].LastMessage.Content != "yo" {
		t.Fatalf("expected bob's last message, got %v", list[0].LastMessage)
	}
	if list[1].LastMessage != nil {
		t.Fatal("expected nil last message for empty conversation")
	}
}

func TestBuildChatListToleratesLookupFailure(t *testing.T) {
	users := &MockUserStore{
		ListOthersFunc: func(ctx context.Context, selfID string) ([]*user.User, error) {
			return []*user.User{
				{ID: "bob", Username: "bob"},
				{ID: "carol", Username: "carol"},
			}, nil
		},
	}
	store := &MockStore{
		FindLastMessageFunc: func(ctx context.Context, userA, userB string) (*message.Message, error) {
			if userB == "bob" {
				return nil, errors.New("timeout")
			}
			return &message.Message{ID: "m2", Content: "fine"}, nil
		},
	}
	svc := message.NewService(store, users, zerolog.Nop())

	list, err := svc.BuildChatList(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected per-entry tolerance, got error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].LastMessage != nil {
		t.Fatal("expected failed lookup to degrade to empty conversation")
	}
	if list[1].LastMessage == nil {
		t.Fatal("expected healthy entry to keep its last message")
	}
}

func TestBuildChatListUserStoreFailure(t *testing.T) {
	users := &MockUserStore{
		ListOthersFunc: func(ctx context.Context, selfID string) ([]*user.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := message.NewService(&MockStore{}, users, zerolog.Nop())

	if _, err := svc.BuildChatList(context.Background(), "alice"); err == nil {
		t.Fatal("expected user enumeration failure to propagate")
	}
}

func TestMarkConversationRead(t *testing.T) {
	var gotOther, gotSelf string
	store := &MockStore{
		MarkReadFunc: func(ctx context.Context, otherUserID, selfUserID string) error {
			gotOther, gotSelf = otherUserID, selfUserID
			return nil
		},
	}
	svc := message.NewService(store, &MockUserStore{}, zerolog.Nop())

	if err := svc.MarkConversationRead(context.Background(), "bob", "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOther != "bob" || gotSelf != "alice" {
		t.Fatalf("expected (bob, alice), got (%s, %s)", gotOther, gotSelf)
	}
}

func TestMarkConversationReadRequiresOtherID(t *testing.T) {
	svc := message.NewService(&MockStore{}, &MockUserStore{}, zerolog.Nop())

	err := svc.MarkConversationRead(context.Background(), "", "alice")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
