package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fitsync/internal/model"
	"fitsync/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignIn(ctx context.Context, email, name, photoURL string) (*model.User, error) {
	args := m.Called(ctx, email, name, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetRole(ctx context.Context, email string) (model.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Role), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockForumService is a mock implementation of service.ForumService.
type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) Create(ctx context.Context, post *model.ForumPost) (*model.ForumPost, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ForumPost), args.Error(1)
}

func (m *MockForumService) Get(ctx context.Context, id string) (*model.ForumPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ForumPost), args.Error(1)
}

func (m *MockForumService) List(ctx context.Context, page, perPage int) (*service.ForumPage, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ForumPage), args.Error(1)
}

// MockVoteService is a mock implementation of service.VoteService.
type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) CastVote(ctx context.Context, forumID string, voteType model.VoteType, userID string) (*service.VoteResult, error) {
	args := m.Called(ctx, forumID, voteType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VoteResult), args.Error(1)
}

func (m *MockVoteService) GetVotes(ctx context.Context, forumID string) (*model.VoteRecord, error) {
	args := m.Called(ctx, forumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoteRecord), args.Error(1)
}

// MockBookingService is a mock implementation of service.BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) RecordSubscription(ctx context.Context, sub *model.Subscription) (*model.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockBookingService) ListBookedSlots(ctx context.Context, email string) ([]string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingService) ListSubscriptionsByTrainer(ctx context.Context, trainerEmail string) ([]model.Subscription, error) {
	args := m.Called(ctx, trainerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockBookingService) ListSubscriptionsByEmail(ctx context.Context, email string) ([]model.Subscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockBookingService) ListSubscribersForSlot(ctx context.Context, trainer, slot string) ([]string, error) {
	args := m.Called(ctx, trainer, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTrainerService is a mock implementation of service.TrainerService.
type MockTrainerService struct {
	mock.Mock
}

func (m *MockTrainerService) Apply(ctx context.Context, app *model.TrainerApplication) (*model.TrainerApplication, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) Accept(ctx context.Context, in service.AcceptInput) (*model.TrainerApplication, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) Reject(ctx context.Context, in service.RejectInput) (*model.TrainerApplication, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) ListByStatus(ctx context.Context, status model.TrainerStatus) ([]model.TrainerApplication, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) Get(ctx context.Context, id string) (*model.TrainerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) GetByEmail(ctx context.Context, email string) (*model.TrainerApplication, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrainerApplication), args.Error(1)
}

func (m *MockTrainerService) UpcomingSessions(ctx context.Context, id string, count int) ([]time.Time, error) {
	args := m.Called(ctx, id, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockCancellationService is a mock implementation of service.CancellationService.
type MockCancellationService struct {
	mock.Mock
}

func (m *MockCancellationService) NotifyCancellation(ctx context.Context, notice service.CancellationNotice) ([]string, error) {
	args := m.Called(ctx, notice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
