package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundwerk/internal/errors"
	"fundwerk/internal/models"
	"fundwerk/internal/pagination"
	"fundwerk/internal/reminder"
	"fundwerk/internal/services"
)

// ReminderRunner triggers reminder passes. Satisfied by *reminder.Engine and
// by the instrumented wrapper in the worker binary.
type ReminderRunner interface {
	Run(ctx context.Context) (*reminder.RunResult, error)
	RunAsOf(ctx context.Context, now time.Time) (*reminder.RunResult, error)
}

// WorkerHandler exposes the internal operations surface of the worker:
// manual run triggers and the notification audit listing.
type WorkerHandler struct {
	runner        ReminderRunner
	notifications services.NotificationServicer
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(runner ReminderRunner, notifications services.NotificationServicer) *WorkerHandler {
	return &WorkerHandler{runner: runner, notifications: notifications}
}

type triggerRunRequest struct {
	// Date runs the pass as of the given day instead of today.
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// TriggerRun handles POST /internal/run. An empty body runs the pass as of
// now; a body with a date runs it as of that day.
func (h *WorkerHandler) TriggerRun(c *gin.Context) {
	var req triggerRunRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"))
		return
	}

	var result *reminder.RunResult
	var err error
	if req.Date != "" {
		asOf, parseErr := time.Parse("2006-01-02", req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
			return
		}
		result, err = h.runner.RunAsOf(c.Request.Context(), asOf)
	} else {
		result, err = h.runner.Run(c.Request.Context())
	}

	if err != nil {
		if errors.Is(err, reminder.ErrRunInProgress) {
			respondWithError(c, apperrors.ErrRunInProgress)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type listNotificationsRequest struct {
	pagination.PageRequest
	Type       string `form:"type" binding:"omitempty,notification_type"`
	ReceiverID string `form:"receiver_id" binding:"omitempty"`
}

// ListNotifications handles GET /internal/notifications with optional type
// and receiver filters.
func (h *WorkerHandler) ListNotifications(c *gin.Context) {
	var req listNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid query parameters"))
		return
	}

	filter := services.NotificationFilter{}
	if req.Type != "" {
		nType := models.NotificationType(req.Type)
		filter.Type = &nType
	}
	if req.ReceiverID != "" {
		filter.ReceiverID = &req.ReceiverID
	}

	resp, err := h.notifications.List(filter, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
