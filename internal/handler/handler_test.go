package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitsync/internal/auth"
	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/service"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, email string) {
	c.Set("user", &jwt.Token{Claims: &auth.Claims{Email: email, Role: string(model.RoleMember)}})
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, status, he.Code)
	resp, ok := he.Message.(errors.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, code, resp.Code)
}

func TestForumHandler_ListPassesPaging(t *testing.T) {
	forums := new(MockForumService)
	forums.On("List", mock.Anything, 2, 6).Return(&service.ForumPage{Items: []model.ForumPost{}, Total: 21, Page: 2, PerPage: 6}, nil)
	h := NewForumHandler(forums, nil, nil)

	c, rec := newContext(newEcho(), http.MethodGet, "/forums?page=2&perPage=6", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":21`)
	forums.AssertExpectations(t)
}

func TestForumHandler_ListRejectsBadQuery(t *testing.T) {
	forums := new(MockForumService)
	h := NewForumHandler(forums, nil, nil)

	c, _ := newContext(newEcho(), http.MethodGet, "/forums?page=two", "")
	requireHTTPError(t, h.List(c), http.StatusBadRequest, "INVALID_QUERY")
	forums.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestForumHandler_VoteRequiresAuthentication(t *testing.T) {
	votes := new(MockVoteService)
	h := NewForumHandler(nil, votes, nil)

	c, _ := newContext(newEcho(), http.MethodPost, "/forums/x/votes", `{"vote_type":"up"}`)
	requireHTTPError(t, h.Vote(c), http.StatusUnauthorized, "UNAUTHORIZED")
	votes.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestForumHandler_VoteUsesCallerEmail(t *testing.T) {
	votes := new(MockVoteService)
	votes.On("CastVote", mock.Anything, "post-1", model.VoteUp, "member@example.com").
		Return(&service.VoteResult{Counted: true, Votes: &model.VoteRecord{UpvoteCount: 1}}, nil)
	h := NewForumHandler(nil, votes, nil)

	c, rec := newContext(newEcho(), http.MethodPost, "/forums/post-1/votes", `{"vote_type":"up"}`)
	c.SetParamNames("id")
	c.SetParamValues("post-1")
	authenticate(c, "member@example.com")

	require.NoError(t, h.Vote(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"counted":true`)
	votes.AssertExpectations(t)
}

func TestBookingHandler_Subscribe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       `{"trainer":"Alex","slot":"Mon 9am","price":"50"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate booking",
			body:       `{"trainer":"Alex","slot":"Mon 9am","price":"50"}`,
			serviceErr: fmt.Errorf("create subscription: %w", errors.ErrConflict),
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "price not a number",
			body:       `{"trainer":"Alex","slot":"Mon 9am","price":"fifty"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "missing slot",
			body:       `{"trainer":"Alex","price":"50"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingService)
			isBooking := mock.MatchedBy(func(s *model.Subscription) bool {
				return s.Email == "member@example.com" && s.Slot == "Mon 9am" && s.Price.Equal(decimal.NewFromInt(50))
			})
			if tt.serviceErr != nil {
				bookings.On("RecordSubscription", mock.Anything, isBooking).Return(nil, tt.serviceErr)
			} else {
				bookings.On("RecordSubscription", mock.Anything, isBooking).Return(&model.Subscription{Slot: "Mon 9am"}, nil)
			}
			h := NewBookingHandler(bookings, nil, nil)

			c, rec := newContext(newEcho(), http.MethodPost, "/subscriptions", tt.body)
			authenticate(c, "member@example.com")
			err := h.Subscribe(c)

			if tt.wantCode != "" {
				requireHTTPError(t, err, tt.wantStatus, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			bookings.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		role       model.Role
		roleErr    error
		wantNext   bool
		wantStatus int
	}{
		{name: "admin allowed", email: "admin@example.com", role: model.RoleAdmin, wantNext: true},
		{name: "member forbidden", email: "member@example.com", role: model.RoleMember, wantStatus: http.StatusForbidden},
		{name: "unknown user forbidden", email: "ghost@example.com", role: "", roleErr: errors.ErrNotFound, wantStatus: http.StatusForbidden},
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			if tt.email != "" {
				users.On("GetRole", mock.Anything, tt.email).Return(tt.role, tt.roleErr)
			}

			called := false
			next := func(c echo.Context) error {
				called = true
				assert.Equal(t, tt.role, c.Get("role"))
				return c.NoContent(http.StatusNoContent)
			}
			mw := RequireRole(users, model.RoleAdmin)

			c, _ := newContext(newEcho(), http.MethodGet, "/admin/balance", "")
			if tt.email != "" {
				authenticate(c, tt.email)
			}
			err := mw(next)(c)

			assert.Equal(t, tt.wantNext, called)
			if !tt.wantNext {
				var he *echo.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, tt.wantStatus, he.Code)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBookingHandler_SlotSubscribersScopedToOwnTrainer(t *testing.T) {
	tests := []struct {
		name       string
		role       model.Role
		app        *model.TrainerApplication
		appErr     error
		wantStatus int
	}{
		{
			name:       "own slot",
			role:       model.RoleTrainer,
			app:        &model.TrainerApplication{Name: "Alex", Status: model.TrainerStatusAccepted},
			wantStatus: http.StatusOK,
		},
		{
			name:       "another trainer's slot",
			role:       model.RoleTrainer,
			app:        &model.TrainerApplication{Name: "Sam", Status: model.TrainerStatusAccepted},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "application not accepted",
			role:       model.RoleTrainer,
			app:        &model.TrainerApplication{Name: "Alex", Status: model.TrainerStatusRequested},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no application",
			role:       model.RoleTrainer,
			appErr:     fmt.Errorf("find application: %w", errors.ErrNotFound),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin",
			role:       model.RoleAdmin,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingService)
			bookings.On("ListSubscribersForSlot", mock.Anything, "Alex", "Mon 9am").Return([]string{"a@x"}, nil)
			trainers := new(MockTrainerService)
			if tt.app != nil {
				trainers.On("GetByEmail", mock.Anything, "coach@example.com").Return(tt.app, nil)
			} else if tt.appErr != nil {
				trainers.On("GetByEmail", mock.Anything, "coach@example.com").Return(nil, tt.appErr)
			}
			h := NewBookingHandler(bookings, nil, trainers)

			c, rec := newContext(newEcho(), http.MethodGet, "/slots/subscribers?trainer=Alex&slot=Mon+9am", "")
			authenticate(c, "coach@example.com")
			c.Set("role", tt.role)
			err := h.SlotSubscribers(c)

			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				bookings.AssertExpectations(t)
				return
			}
			requireHTTPError(t, err, tt.wantStatus, "FORBIDDEN")
			bookings.AssertNotCalled(t, "ListSubscribersForSlot", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBookingHandler_CancelSlotRejectsForeignTrainer(t *testing.T) {
	cancellations := new(MockCancellationService)
	trainers := new(MockTrainerService)
	trainers.On("GetByEmail", mock.Anything, "coach@example.com").
		Return(&model.TrainerApplication{Name: "Sam", Status: model.TrainerStatusAccepted}, nil)
	h := NewBookingHandler(nil, cancellations, trainers)

	c, _ := newContext(newEcho(), http.MethodPost, "/slots/cancel", `{"trainer":"Alex","slot":"Mon 9am","message":"Gym closed"}`)
	authenticate(c, "coach@example.com")
	c.Set("role", model.RoleTrainer)

	requireHTTPError(t, h.CancelSlot(c), http.StatusForbidden, "FORBIDDEN")
	cancellations.AssertNotCalled(t, "NotifyCancellation", mock.Anything, mock.Anything)
}

func TestBookingHandler_CancelSlotOwnTrainer(t *testing.T) {
	cancellations := new(MockCancellationService)
	cancellations.On("NotifyCancellation", mock.Anything, service.CancellationNotice{
		Trainer: "Alex",
		Slot:    "Mon 9am",
		Message: "Gym closed",
	}).Return([]string{"a@x", "b@x"}, nil)
	trainers := new(MockTrainerService)
	trainers.On("GetByEmail", mock.Anything, "coach@example.com").
		Return(&model.TrainerApplication{Name: "alex", Status: model.TrainerStatusAccepted}, nil)
	h := NewBookingHandler(nil, cancellations, trainers)

	c, rec := newContext(newEcho(), http.MethodPost, "/slots/cancel", `{"trainer":"Alex","slot":"Mon 9am","message":"Gym closed"}`)
	authenticate(c, "coach@example.com")
	c.Set("role", model.RoleTrainer)

	require.NoError(t, h.CancelSlot(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recipients":["a@x","b@x"]`)
	cancellations.AssertExpectations(t)
}
