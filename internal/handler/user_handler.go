package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// CreateUserResponse echoes the accepted payload. The id is deliberately
// absent, preserving the contract the API has always had.
type CreateUserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user in listing and nested task responses.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User payload"
// @Success 200 {object} CreateUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/ [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
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

	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CreateUserResponse{Name: user.Name, Email: user.Email})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/ [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
