package router

import (
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fitsync/docs"
	"fitsync/internal/auth"
	"fitsync/internal/config"
	"fitsync/internal/errors"
	"fitsync/internal/handler"
	"fitsync/internal/model"
	"fitsync/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Trainers   *handler.TrainerHandler
	Bookings   *handler.BookingHandler
	Balance    *handler.BalanceHandler
	Forums     *handler.ForumHandler
	Newsletter *handler.NewsletterHandler
	Classes    *handler.ClassHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, jwtService *auth.JWTService, users service.UserService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "FitSync is running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/access-token", h.Auth.AccessToken)
	e.POST("/auth/refresh", h.Auth.Refresh)
	e.POST("/auth/logout", h.Auth.Logout)

	e.GET("/trainers", h.Trainers.ListAccepted)
	e.GET("/trainers/:id", h.Trainers.Get)
	e.GET("/trainers/:id/sessions", h.Trainers.Sessions)
	e.GET("/classes", h.Classes.List)
	e.GET("/forums", h.Forums.List)
	e.GET("/forums/:id", h.Forums.Get)
	e.GET("/forums/:id/votes", h.Forums.Votes)
	e.POST("/newsletter", h.Newsletter.Subscribe)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return auth.NewClaims()
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "unauthorized access",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.GET("/me", h.Users.Me)
	secured.GET("/users/role", h.Users.Role)

	secured.POST("/trainers/apply", h.Trainers.Apply)
	secured.GET("/trainers/me", h.Trainers.Mine)

	secured.POST("/subscriptions", h.Bookings.Subscribe)
	secured.GET("/subscriptions/slots", h.Bookings.BookedSlots)
	secured.GET("/subscriptions/me", h.Bookings.Mine)

	secured.POST("/forums/:id/votes", h.Forums.Vote)

	// Trainer and admin routes
	staff := secured.Group("", handler.RequireRole(users, model.RoleTrainer, model.RoleAdmin))
	staff.POST("/forums", h.Forums.Create)
	staff.GET("/slots/subscribers", h.Bookings.SlotSubscribers)
	staff.POST("/slots/cancel", h.Bookings.CancelSlot)
	staff.GET("/trainer/subscriptions", h.Bookings.TrainerBookings)

	// Admin routes
	admin := secured.Group("/admin", handler.RequireRole(users, model.RoleAdmin))
	admin.GET("/users", h.Users.ListUsers)
	admin.GET("/trainers", h.Trainers.ListByStatus)
	admin.PATCH("/trainers/:id/accept", h.Trainers.Accept)
	admin.PATCH("/trainers/:id/reject", h.Trainers.Reject)
	admin.POST("/trainers/:id/payout", h.Trainers.Payout)
	admin.GET("/balance", h.Balance.GetBalance)
	admin.GET("/subscriptions", h.Bookings.BookingsByTrainer)
	admin.GET("/newsletter", h.Newsletter.List)
	admin.POST("/classes", h.Classes.Create)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
