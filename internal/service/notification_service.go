package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"socialite/internal/model"
	"socialite/internal/repository"
	"socialite/internal/util"
)

type NotificationService interface {
	SendFriendRequestNotification(receiverID, senderID, senderName, requestID string) error
	SendFriendAcceptedNotification(receiverID, senderID, senderName, requestID string) error
	SendNewMessageNotification(receiverID, senderID, senderName, messageID string) error
	GetNotifications(userID string, limit, offset int) ([]*model.Notification, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
}

// NotificationMessage is the payload published to RabbitMQ; the worker
// consumes it and pushes to the websocket hub.
type NotificationMessage struct {
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	NotificationQueueName  = "notification_queue"
	NotificationExchange   = "notification_exchange"
	NotificationRoutingKey = "notification"
)

type notificationService struct {
	notifRepo repository.NotificationRepository
	rabbitMQ  *util.RabbitMQClient
}

func NewNotificationService(notifRepo repository.NotificationRepository, rabbitMQ *util.RabbitMQClient) NotificationService {
	return &notificationService{notifRepo: notifRepo, rabbitMQ: rabbitMQ}
}

func (s *notificationService) SendFriendRequestNotification(receiverID, senderID, senderName, requestID string) error {
	return s.send(receiverID, senderID, requestID,
		model.NotificationTypeFriendRequest,
		"New friend request",
		fmt.Sprintf("%s sent you a friend request", senderName))
}

func (s *notificationService) SendFriendAcceptedNotification(receiverID, senderID, senderName, requestID string) error {
	return s.send(receiverID, senderID, requestID,
		model.NotificationTypeFriendAccepted,
		"Friend request accepted",
		fmt.Sprintf("%s accepted your friend request", senderName))
}

func (s *notificationService) SendNewMessageNotification(receiverID, senderID, senderName, messageID string) error {
	return s.send(receiverID, senderID, messageID,
		model.NotificationTypeNewMessage,
		"New message",
		fmt.Sprintf("%s sent you a message", senderName))
}

// send persists the notification and publishes it for async delivery. A
// publish failure is logged, not returned: the row is already durable and
// will show up on the next poll.
func (s *notificationService) send(userID, senderID, targetID, notifType, title, message string) error {
	notification := &model.Notification{
		UserID:   userID,
		SenderID: &senderID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		TargetID: &targetID,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.rabbitMQ != nil {
		msg := NotificationMessage{
			UserID:  userID,
			Type:    notifType,
			Title:   title,
			Message: message,
			Data: map[string]interface{}{
				"notification_id": notification.ID,
				"sender_id":       senderID,
				"target_id":       targetID,
			},
			Timestamp: time.Now(),
		}
		body, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}
		if err := s.rabbitMQ.Publish(NotificationExchange, NotificationRoutingKey, body); err != nil {
			log.Printf("Failed to publish notification: %v", err)
		}
	}
	return nil
}

func (s *notificationService) GetNotifications(userID string, limit, offset int) ([]*model.Notification, error) {
	return s.notifRepo.FindByUserID(userID, limit, offset)
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.notifRepo.GetUnreadCount(userID)
}

func (s *notificationService) MarkAsRead(notificationID, userID string) error {
	return s.notifRepo.MarkAsRead(notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notifRepo.MarkAllAsRead(userID)
}
