package service

import (
	"context"
	"log/slog"
	"strings"

	"fitsync/internal/errors"
	"fitsync/internal/notify"
	"fitsync/internal/repository"
)

const defaultCancellationSubject = "Your FitSync class has been cancelled"

// CancellationNotice describes a cancelled trainer slot.
type CancellationNotice struct {
	Trainer string
	Slot    string
	Subject string
	Message string
}

// CancellationService tells every subscriber of a slot that it was cancelled.
type CancellationService interface {
	NotifyCancellation(ctx context.Context, notice CancellationNotice) ([]string, error)
}

type cancellationService struct {
	repo     repository.SubscriptionRepository
	notifier notify.Gateway
}

// NewCancellationService creates a new cancellation service.
func NewCancellationService(repo repository.SubscriptionRepository, notifier notify.Gateway) CancellationService {
	return &cancellationService{repo: repo, notifier: notifier}
}

// NotifyCancellation sends one bulk notice to the distinct subscribers of the slot and returns them.
// The recipients are returned even when delivery fails.
func (s *cancellationService) NotifyCancellation(ctx context.Context, notice CancellationNotice) ([]string, error) {
	notice.Trainer = strings.TrimSpace(notice.Trainer)
	notice.Slot = strings.TrimSpace(notice.Slot)
	if notice.Trainer == "" || notice.Slot == "" {
		return nil, errors.ErrInvalidInput
	}

	emails, err := s.repo.ListSubscriberEmails(ctx, notice.Trainer, notice.Slot)
	if err != nil {
		return nil, storeError("list slot subscribers", err)
	}
	recipients := dedupe(emails)
	if len(recipients) == 0 {
		return recipients, nil
	}

	subject := notice.Subject
	if subject == "" {
		subject = defaultCancellationSubject
	}
	msg := notify.Message{
		To:      recipients,
		Subject: subject,
		Kind:    notify.KindSlotCancelled,
		Data: notify.Data{
			ReceiverName: "FitSync member",
			Trainer:      notice.Trainer,
			Slot:         notice.Slot,
			Body:         notice.Message,
		},
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "cancellation notice failed",
			"trainer", notice.Trainer,
			"slot", notice.Slot,
			"recipients", len(recipients),
			"error", err,
		)
	}
	return recipients, nil
}
