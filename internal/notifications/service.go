package notifications

import (
	"context"

	"osspace/pkg/logger"

	"gorm.io/gorm"
)

// Service fans a recorded NotificationLog row out to the message broker.
// Publication is best effort: rows stay PENDING when no broker is wired
// and are marked FAILED when publishing errors, so a delivery worker can
// pick up anything not QUEUED.
type Service interface {
	Dispatch(ctx context.Context, log *NotificationLog) error
	ListLogs(ctx context.Context, bookingID string) ([]NotificationLog, error)
}

type service struct {
	db       *gorm.DB
	producer Producer
	log      *logger.Logger
}

func NewService(db *gorm.DB, producer Producer, log *logger.Logger) Service {
	return &service{db: db, producer: producer, log: log}
}

func (s *service) Dispatch(ctx context.Context, entry *NotificationLog) error {
	if s.producer == nil {
		return nil
	}

	message := &Message{
		LogID:     entry.ID,
		Channel:   entry.Channel,
		Template:  entry.Template,
		Recipient: entry.Recipient,
		CreatedAt: entry.CreatedAt,
	}
	if entry.BookingID != nil {
		message.BookingID = entry.BookingID.String()
	}

	status := StatusQueued
	if err := s.producer.Publish(ctx, message); err != nil {
		s.log.WithError(err).Warn("notification publish failed",
			"log_id", entry.ID.String())
		status = StatusFailed
	}

	return s.db.WithContext(ctx).
		Model(&NotificationLog{}).
		Where("id = ?", entry.ID).
		Update("status", status).Error
}

func (s *service) ListLogs(ctx context.Context, bookingID string) ([]NotificationLog, error) {
	var logs []NotificationLog
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if bookingID != "" {
		query = query.Where("booking_id = ?", bookingID)
	}
	err := query.Find(&logs).Error
	return logs, err
}
