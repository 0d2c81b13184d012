package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/callcaps/callcaps-server/internal/infrastructure/http/middleware"
	"github.com/callcaps/callcaps-server/pkg/config"
	"github.com/callcaps/callcaps-server/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg                *config.Config
	jwtManager         *jwt.Manager
	recordingHandler   *Recording
	meetingTypeHandler *MeetingType
	meetingHandler     *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	recordingHandler *Recording,
	meetingTypeHandler *MeetingType,
	meetingHandler *Meeting,
) *Router {
	return &Router{
		cfg:                cfg,
		jwtManager:         jwtManager,
		recordingHandler:   recordingHandler,
		meetingTypeHandler: meetingTypeHandler,
		meetingHandler:     meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Swagger documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group, bearer auth required
	v1 := e.Group("/v1", middleware.EchoAuth(rt.jwtManager))

	rt.setupRecordingRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupRecordingRoutes configures recording and meeting-type routes
func (rt *Router) setupRecordingRoutes(g *echo.Group) {
	recordings := g.Group("/call-recordings")

	// Meeting types first: the /meeting-types prefix must not be captured
	// by the /:id parameter routes.
	meetingTypes := recordings.Group("/meeting-types")
	meetingTypes.GET("", rt.meetingTypeHandler.List)
	meetingTypes.POST("", rt.meetingTypeHandler.Create)
	meetingTypes.GET("/:id", rt.meetingTypeHandler.Get)
	meetingTypes.PUT("/:id", rt.meetingTypeHandler.Update)
	meetingTypes.DELETE("/:id", rt.meetingTypeHandler.Delete)

	recordings.GET("", rt.recordingHandler.List)
	recordings.POST("", rt.recordingHandler.Create)
	recordings.POST("/upload", rt.recordingHandler.Upload)
	recordings.GET("/:id", rt.recordingHandler.Get)
	recordings.POST("/:id/process", rt.recordingHandler.Process)
	recordings.GET("/:id/video", rt.recordingHandler.StreamVideo)
}

// setupMeetingRoutes configures the read-side meeting endpoints
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("/analytics", rt.meetingHandler.Analytics)
	meetings.GET("/:id/participants", rt.meetingHandler.Participants)
	meetings.GET("/:id/action-items", rt.meetingHandler.ActionItems)
	meetings.GET("/:id/decisions", rt.meetingHandler.Decisions)
	meetings.GET("/:id/topics", rt.meetingHandler.Topics)
	meetings.PUT("/:id/action-items/:actionId", rt.meetingHandler.UpdateActionItem)
	meetings.POST("/:id/export", rt.meetingHandler.Export)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
