package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"fitsync/internal/cache"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/notify"
	"fitsync/internal/repository"
)

const trainerCacheTTL = 5 * time.Minute

func trainerListKey(status model.TrainerStatus) string {
	return "trainers:status:" + string(status)
}

// AcceptInput carries an admin's decision to accept an application.
type AcceptInput struct {
	TrainerID string
	Email     string
	Name      string
	Role      model.Role
	Salary    string
}

// RejectInput carries an admin's decision to reject an application.
type RejectInput struct {
	TrainerID string
	Email     string
	Name      string
	Feedback  string
}

// TrainerService manages the trainer application lifecycle.
type TrainerService interface {
	Apply(ctx context.Context, app *model.TrainerApplication) (*model.TrainerApplication, error)
	Accept(ctx context.Context, in AcceptInput) (*model.TrainerApplication, error)
	Reject(ctx context.Context, in RejectInput) (*model.TrainerApplication, error)
	ListByStatus(ctx context.Context, status model.TrainerStatus) ([]model.TrainerApplication, error)
	Get(ctx context.Context, id string) (*model.TrainerApplication, error)
	GetByEmail(ctx context.Context, email string) (*model.TrainerApplication, error)
	UpcomingSessions(ctx context.Context, id string, count int) ([]time.Time, error)
}

type trainerService struct {
	repo     repository.TrainerRepository
	tx       repository.Transactor
	cache    *cache.Client
	notifier notify.Gateway
}

// NewTrainerService creates a new trainer service.
func NewTrainerService(repo repository.TrainerRepository, tx repository.Transactor, cache *cache.Client, notifier notify.Gateway) TrainerService {
	return &trainerService{repo: repo, tx: tx, cache: cache, notifier: notifier}
}

// Apply files a new application. An applicant with a pending or accepted application gets ErrConflict.
func (s *trainerService) Apply(ctx context.Context, app *model.TrainerApplication) (*model.TrainerApplication, error) {
	app.Email = strings.TrimSpace(app.Email)
	app.Name = strings.TrimSpace(app.Name)
	if app.Email == "" || app.Name == "" {
		return nil, errors.ErrInvalidInput
	}

	existing, err := s.repo.FindLatestByEmail(ctx, app.Email)
	switch {
	case err == nil && existing.Status != model.TrainerStatusRejected:
		return nil, fmt.Errorf("application %s is %s: %w", existing.ID, existing.Status, errors.ErrConflict)
	case err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeError("check existing application", err)
	}

	app.Status = model.TrainerStatusRequested
	app.Salary = ""
	app.Feedback = ""
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, storeError("create application", err)
	}

	_ = s.cache.Delete(ctx, trainerListKey(model.TrainerStatusRequested))
	return app, nil
}

// Accept moves an application to accepted and promotes the applicant's user role in one
// transaction, then notifies the applicant. Accepting an accepted application re-applies
// the writes without notifying again.
func (s *trainerService) Accept(ctx context.Context, in AcceptInput) (*model.TrainerApplication, error) {
	id, err := parseID(in.TrainerID)
	if err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleTrainer
	}
	if !in.Role.Valid() {
		return nil, errors.ErrInvalidRole
	}
	in.Email = strings.TrimSpace(in.Email)

	var (
		app             *model.TrainerApplication
		alreadyAccepted bool
		salary          string
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		var err error
		app, err = tx.Trainers.FindByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("find application", err)
		}
		if app.Status == model.TrainerStatusRejected {
			return fmt.Errorf("accept rejected application: %w", errors.ErrInvalidTransition)
		}
		alreadyAccepted = app.Status == model.TrainerStatusAccepted

		if in.Email == "" {
			in.Email = app.Email
		}
		if !strings.EqualFold(in.Email, app.Email) {
			return fmt.Errorf("accept %s for %s: %w", app.Email, in.Email, errors.ErrInvalidInput)
		}
		in.Email = app.Email
		if _, err := tx.Users.FindByEmail(ctx, in.Email); err != nil {
			return storeError("find applicant user", err)
		}

		salary = acceptedSalary(app, in.Salary, alreadyAccepted)
		if err := tx.Trainers.UpdateFields(ctx, id, map[string]interface{}{
			"status": model.TrainerStatusAccepted,
			"salary": salary,
		}); err != nil {
			return storeError("update application", err)
		}
		if _, err := tx.Users.UpdateRole(ctx, in.Email, in.Role); err != nil {
			return storeError("update user role", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	app.Status = model.TrainerStatusAccepted
	app.Salary = salary
	s.invalidate(ctx)
	_ = s.cache.Delete(ctx, userCacheKey(in.Email))

	if alreadyAccepted {
		return app, nil
	}

	name := in.Name
	if name == "" {
		name = app.Name
	}
	s.notify(ctx, notify.Message{
		To:      []string{in.Email},
		Subject: "Your FitSync trainer application was accepted",
		Kind:    notify.KindTrainerAccepted,
		Data:    notify.Data{ReceiverName: name},
	})
	return app, nil
}

// acceptedSalary keeps a paid salary and, on a repeated accept, the stored salary unless a new one is given.
func acceptedSalary(app *model.TrainerApplication, requested string, alreadyAccepted bool) string {
	if app.Salary == model.SalaryPaid {
		return app.Salary
	}
	if requested != "" {
		return requested
	}
	if alreadyAccepted && app.Salary != "" {
		return app.Salary
	}
	return model.SalaryUnpaid
}

// Reject moves a requested application to rejected and notifies the applicant.
func (s *trainerService) Reject(ctx context.Context, in RejectInput) (*model.TrainerApplication, error) {
	id, err := parseID(in.TrainerID)
	if err != nil {
		return nil, err
	}

	var (
		app             *model.TrainerApplication
		alreadyRejected bool
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		var err error
		app, err = tx.Trainers.FindByIDForUpdate(ctx, id)
		if err != nil {
			return storeError("find application", err)
		}
		if app.Status == model.TrainerStatusAccepted {
			return fmt.Errorf("reject accepted application: %w", errors.ErrInvalidTransition)
		}
		alreadyRejected = app.Status == model.TrainerStatusRejected

		return storeError("update application", tx.Trainers.UpdateFields(ctx, id, map[string]interface{}{
			"status":   model.TrainerStatusRejected,
			"feedback": in.Feedback,
		}))
	})
	if err != nil {
		return nil, err
	}

	app.Status = model.TrainerStatusRejected
	app.Feedback = in.Feedback
	s.invalidate(ctx)

	if alreadyRejected {
		return app, nil
	}

	name := in.Name
	if name == "" {
		name = app.Name
	}
	s.notify(ctx, notify.Message{
		To:      []string{app.Email},
		Subject: "Update on your FitSync trainer application",
		Kind:    notify.KindTrainerRejected,
		Data:    notify.Data{ReceiverName: name, Body: in.Feedback},
	})
	return app, nil
}

func (s *trainerService) ListByStatus(ctx context.Context, status model.TrainerStatus) ([]model.TrainerApplication, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, errors.ErrInvalidInput)
	}
	apps, err := cache.GetOrLoad(ctx, s.cache, trainerListKey(status), trainerCacheTTL, func() ([]model.TrainerApplication, error) {
		return s.repo.ListByStatus(ctx, status)
	})
	if err != nil {
		return nil, storeError("list applications", err)
	}
	if apps == nil {
		apps = []model.TrainerApplication{}
	}
	return apps, nil
}

func (s *trainerService) Get(ctx context.Context, id string) (*model.TrainerApplication, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, storeError("find application", err)
	}
	return app, nil
}

// GetByEmail returns the latest application submitted with email.
func (s *trainerService) GetByEmail(ctx context.Context, email string) (*model.TrainerApplication, error) {
	app, err := s.repo.FindLatestByEmail(ctx, email)
	if err != nil {
		return nil, storeError("find application", err)
	}
	return app, nil
}

// UpcomingSessions lists the next count sessions of an accepted trainer.
func (s *trainerService) UpcomingSessions(ctx context.Context, id string, count int) ([]time.Time, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != model.TrainerStatusAccepted {
		return nil, errors.ErrInvalidStatus
	}
	if count <= 0 || count > 50 {
		count = 5
	}
	return app.NextSessions(time.Now(), count)
}

func (s *trainerService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx,
		trainerListKey(model.TrainerStatusRequested),
		trainerListKey(model.TrainerStatusAccepted),
		trainerListKey(model.TrainerStatusRejected),
	)
}

// notify hands msg to the gateway. The state change already committed, so a failure is only logged.
func (s *trainerService) notify(ctx context.Context, msg notify.Message) {
	if err := s.notifier.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "trainer notification failed", "kind", msg.Kind, "to", msg.To, "error", err)
	}
}
