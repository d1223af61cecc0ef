package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	// Pointer so a missing user_id fails validation without rejecting
	// explicit numeric values.
	UserID *uint `json:"user_id" validate:"required"`
}

// UpdateTaskRequest represents a status update request. Status is a pointer
// so code 0 (pendent) survives the required check.
type UpdateTaskRequest struct {
	Status *int `json:"status" validate:"required"`
}

// TaskResponse represents a task with its owner denormalized.
type TaskResponse struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	User        UserResponse `json:"user"`
}

func newTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		User:        newUserResponse(&t.User),
	}
}

// CreateTask godoc
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body CreateTaskRequest true "Task payload"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/ [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: errors.ErrInvalidPayload.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: errors.ErrInvalidPayload.Error(),
		})
	}

	task, err := h.svc.CreateTask(c.Request().Context(), req.Title, req.Description, *req.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newTaskResponse(task))
}

// UpdateTask godoc
// @Summary Update task status
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path int true "Task ID"
// @Param status body UpdateTaskRequest true "Status code (0 pendent, 1 on going, 2 completed)"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{task_id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: errors.ErrInvalidPayload.Error(),
		})
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: errors.ErrInvalidPayload.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: errors.ErrInvalidPayload.Error(),
		})
	}

	task, err := h.svc.UpdateStatus(c.Request().Context(), uint(taskID), *req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, newTaskResponse(task))
}

// ListTasks godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} TaskResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/ [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, newTaskResponse(&tasks[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
