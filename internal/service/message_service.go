package service

import (
	"errors"
	"fmt"

	"socialite/internal/model"
	"socialite/internal/repository"
)

// ReactionOutcome tags the result of a reaction toggle so callers can
// tell "removed" apart from a failure.
type ReactionOutcome string

const (
	ReactionAdded   ReactionOutcome = "added"
	ReactionRemoved ReactionOutcome = "removed"
)

// ReactionResult is the outcome of React. Reaction is set only when the
// outcome is ReactionAdded.
type ReactionResult struct {
	Outcome  ReactionOutcome        `json:"outcome"`
	Reaction *model.MessageReaction `json:"reaction,omitempty"`
}

type SendMessageRequest struct {
	ReceiverID string  `json:"receiver_id" binding:"required"`
	Content    *string `json:"content,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	VideoURL   *string `json:"video_url,omitempty"`
}

type MessageService interface {
	SendMessage(senderID string, req SendMessageRequest) (*model.Message, error)
	GetConversation(userID, otherID string, limit, offset int) ([]*model.Message, error)
	MarkAsRead(userID, senderID string) error
	GetUnreadCount(userID string) (int64, error)
	React(userID, messageID, kind string) (*ReactionResult, error)
}

type messageService struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	store        *repository.Store
	notifService NotificationService
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	store *repository.Store,
	notifService NotificationService,
) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		store:        store,
		notifService: notifService,
	}
}

// SendMessage stores a direct message. The type is derived from the
// attached media when not set explicitly.
func (s *messageService) SendMessage(senderID string, req SendMessageRequest) (*model.Message, error) {
	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		return nil, ErrUserNotFound
	}

	msgType := model.MessageTypeText
	if req.ImageURL != nil && *req.ImageURL != "" {
		msgType = model.MessageTypeImage
	} else if req.VideoURL != nil && *req.VideoURL != "" {
		msgType = model.MessageTypeVideo
	} else if req.Content == nil || *req.Content == "" {
		return nil, invalidArgument("message must have content or media")
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		VideoURL:   req.VideoURL,
		Type:       msgType,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if s.notifService != nil {
		go s.notifService.SendNewMessageNotification(req.ReceiverID, senderID, sender.Username, msg.ID)
	}

	return msg, nil
}

// GetConversation returns the messages between the caller and another
// user and marks the received ones read.
func (s *messageService) GetConversation(userID, otherID string, limit, offset int) ([]*model.Message, error) {
	messages, err := s.messageRepo.GetConversation(userID, otherID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if err := s.messageRepo.MarkAsRead(userID, otherID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return messages, nil
}

func (s *messageService) MarkAsRead(userID, senderID string) error {
	return s.messageRepo.MarkAsRead(userID, senderID)
}

func (s *messageService) GetUnreadCount(userID string) (int64, error) {
	return s.messageRepo.GetUnreadCount(userID)
}

// React toggles the caller's reaction on a message. Reacting again with
// the same kind removes it; a different kind replaces whatever reaction
// the caller held. The lookup and both write branches run inside one
// transaction, so a concurrent double submit cannot leave two live rows
// for the same (message, user) pair.
func (s *messageService) React(userID, messageID, kind string) (*ReactionResult, error) {
	if !model.ValidReaction(kind) {
		return nil, ErrInvalidReaction
	}

	if _, err := s.messageRepo.FindByID(messageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}

	var result *ReactionResult
	err := s.store.Atomic(func(tx *repository.Store) error {
		existing, err := tx.Reactions.FindByMessageAndUserAndKind(messageID, userID, kind)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if existing != nil {
			if err := tx.Reactions.Delete(existing.ID); err != nil {
				return err
			}
			result = &ReactionResult{Outcome: ReactionRemoved}
			return nil
		}

		// A different kind may be live; clear it before inserting
		if err := tx.Reactions.DeleteByMessageAndUser(messageID, userID); err != nil {
			return err
		}
		reaction := &model.MessageReaction{
			MessageID: messageID,
			UserID:    userID,
			Kind:      kind,
		}
		if err := tx.Reactions.Create(reaction); err != nil {
			return err
		}
		result = &ReactionResult{Outcome: ReactionAdded, Reaction: reaction}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle reaction: %w", err)
	}
	return result, nil
}
