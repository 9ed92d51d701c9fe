package router

import (
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"userdir/internal/api"
	"userdir/internal/config"
	"userdir/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(corsMiddleware(cfg))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/health", healthHandler.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", healthHandler.Check)
	apiGroup.GET("/users", userHandler.ListUsers)
	apiGroup.GET("/users/:id", userHandler.GetUser)
	apiGroup.POST("/users", userHandler.CreateUser)
	apiGroup.PUT("/users/:id", userHandler.UpdateUser)
	apiGroup.DELETE("/users/:id", userHandler.DeleteUser)
}

// corsMiddleware is permissive in development; otherwise only the configured
// origins are allowed.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	if cfg.IsDevelopment() {
		return middleware.CORS()
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	})
}

// httpErrorHandler shapes everything that escapes the handlers into the
// standard error envelope: unmatched routes become ROUTE_NOT_FOUND, anything
// else a generic 500.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := api.ErrorDetail{
		Message: "Internal Server Error",
		Code:    api.CodeInternalError,
	}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
			status = http.StatusNotFound
			detail.Message = fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path)
			detail.Code = api.CodeRouteNotFound
		} else if msg, ok := he.Message.(string); ok {
			detail.Message = msg
		}
	}

	if status == http.StatusInternalServerError {
		log.Printf("unhandled error %s %s: %v", c.Request().Method, c.Request().RequestURI, err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, api.ErrorResponse{Success: false, Error: detail})
}

// Validator adapts go-playground/validator to the echo.Validator interface,
// reporting fields by their json names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name, _, _ = strings.Cut(f.Tag.Get("query"), ",")
		}
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
