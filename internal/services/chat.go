package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Haider077/CallingJournal/internal/clients/ai"
	chatRepos "github.com/Haider077/CallingJournal/internal/data/repos/chat"
	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/ctxutil"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

// historyLimit caps how many past turns are replayed to the provider.
const historyLimit = 200

type ChatService interface {
	CreateSession(ctx context.Context, title string) (*chat.Session, error)
	ListSessions(ctx context.Context) ([]*chat.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*chat.Session, error)
	RenameSession(ctx context.Context, id uuid.UUID, title string) (*chat.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListMessages(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]*chat.Message, error)
	SendMessage(ctx context.Context, sessionID uuid.UUID, content, contextNote string) (*chat.Message, error)
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo chatRepos.SessionRepo
	messageRepo chatRepos.MessageRepo
	provider    ai.Provider
}

// NewChatService accepts a nil provider; sending a message then fails with
// ai.ErrNotConfigured while session and history operations keep working.
func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo chatRepos.SessionRepo,
	messageRepo chatRepos.MessageRepo,
	provider ai.Provider,
) ChatService {
	return &chatService{
		db:          db,
		log:         log.With("service", "ChatService"),
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		provider:    provider,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, title string) (*chat.Session, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	s := &chat.Session{UserID: rd.UserID, Title: title}
	created, err := cs.sessionRepo.Create(dbctx.Context{Ctx: ctx}, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return created, nil
}

func (cs *chatService) ListSessions(ctx context.Context) ([]*chat.Session, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	return cs.sessionRepo.ListByUser(dbctx.Context{Ctx: ctx}, rd.UserID)
}

func (cs *chatService) GetSession(ctx context.Context, id uuid.UUID) (*chat.Session, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	return cs.sessionRepo.GetByID(dbctx.Context{Ctx: ctx}, id, rd.UserID)
}

func (cs *chatService) RenameSession(ctx context.Context, id uuid.UUID, title string) (*chat.Session, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := cs.sessionRepo.UpdateTitle(dbc, id, rd.UserID, title); err != nil {
		return nil, err
	}
	return cs.sessionRepo.GetByID(dbc, id, rd.UserID)
}

func (cs *chatService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return errs.ErrUnauthorized
	}
	return cs.sessionRepo.Delete(dbctx.Context{Ctx: ctx}, id, rd.UserID)
}

func (cs *chatService) ListMessages(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]*chat.Message, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	dbc := dbctx.Context{Ctx: ctx}
	// Ownership gate before touching messages.
	if _, err := cs.sessionRepo.GetByID(dbc, sessionID, rd.UserID); err != nil {
		return nil, err
	}
	return cs.messageRepo.ListBySession(dbc, sessionID, offset, limit)
}

// SendMessage turns one user message into a persisted model reply:
//
//  1. ownership check on the session
//  2. persist the user turn (plus session bump) before any provider call, so
//     a provider failure never loses the user's input
//  3. replay the most recent turns, ending with the pending turn decorated
//     with the optional context note
//  4. persist the reply as a "model" turn and bump the session again
//
// Provider failures surface once; nothing is retried and the user turn from
// step 2 is deliberately not rolled back.
func (cs *chatService) SendMessage(ctx context.Context, sessionID uuid.UUID, content, contextNote string) (*chat.Message, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := cs.sessionRepo.GetByID(dbc, sessionID, rd.UserID); err != nil {
		return nil, err
	}

	userMsg := &chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   content,
	}
	if contextNote != "" {
		meta, err := json.Marshal(map[string]string{"context": contextNote})
		if err != nil {
			return nil, fmt.Errorf("failed to encode message metadata: %w", err)
		}
		userMsg.Metadata = datatypes.JSON(meta)
	}
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := cs.messageRepo.Create(txc, userMsg); err != nil {
			return fmt.Errorf("failed to persist user message: %w", err)
		}
		return cs.sessionRepo.Touch(txc, sessionID, time.Now().UTC())
	}); err != nil {
		return nil, err
	}

	if cs.provider == nil {
		return nil, ai.ErrNotConfigured
	}

	// Replay the newest historyLimit turns. On long sessions the window must
	// slide forward, not anchor at the oldest rows.
	count, err := cs.messageRepo.CountBySession(dbc, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count session history: %w", err)
	}
	offset := 0
	if count > historyLimit {
		offset = int(count) - historyLimit
	}
	history, err := cs.messageRepo.ListBySession(dbc, sessionID, offset, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}
	prompt := content
	if contextNote != "" {
		prompt = fmt.Sprintf("Context:\n%s\n\nUser Message:\n%s", contextNote, content)
	}
	// The pending turn persisted above is appended decorated and stored raw;
	// skipping its row here keeps it out of the replay twice.
	turns := make([]ai.Message, 0, len(history)+1)
	for _, m := range history {
		if m.ID == userMsg.ID {
			continue
		}
		turns = append(turns, ai.Message{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, ai.Message{Role: chat.RoleUser, Content: prompt})

	reply, err := cs.provider.Chat(ctx, turns)
	if err != nil {
		cs.log.Warn("AI completion failed", "session_id", sessionID.String(), "provider", cs.provider.Name(), "error", err)
		return nil, fmt.Errorf("ai completion failed: %w", err)
	}

	modelMsg := &chat.Message{
		SessionID: sessionID,
		Role:      chat.RoleModel,
		Content:   reply,
	}
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := cs.messageRepo.Create(txc, modelMsg); err != nil {
			return fmt.Errorf("failed to persist model message: %w", err)
		}
		return cs.sessionRepo.Touch(txc, sessionID, time.Now().UTC())
	}); err != nil {
		return nil, err
	}
	return modelMsg, nil
}
