package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/account-service/internal/api/metrics"
	"github.com/usermgmt/account-service/internal/core/domain"
	"github.com/usermgmt/account-service/internal/core/ports"
)

// UserHandler serves account management and the caller's own profile.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns non-deleted accounts.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring of name or email"
// @Param        status  query     string  false  "active or inactive"
// @Param        sort    query     string  false  "age_asc or age_desc"
// @Success      200     {object}  Envelope{data=[]userResponse}
// @Failure      401     {object}  Envelope
// @Failure      403     {object}  Envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	profiles, err := h.service.List(c.Request().Context(), ports.ListUsersInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope("Users retrieved successfully.", toUserListResponse(profiles)))
}

// Get returns one account by id.
//
// @Summary      Get account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      404  {object}  Envelope
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	profile, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundByID(err, id)
	}
	return c.JSON(http.StatusOK, envelope("User retrieved successfully.", toUserResponse(profile)))
}

// Create adds an account on behalf of an admin.
//
// @Summary      Create account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.Create(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusOK, envelope("User created successfully.", toUserResponse(profile)))
}

// Update overwrites an account's profile and activity flag.
//
// @Summary      Update account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "New values"
// @Success      200   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.Update(c.Request().Context(), id, toUpdateUserInput(req))
	if err != nil {
		return notFoundByID(err, id)
	}

	metrics.UserLifecycleTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, envelope("User updated successfully.", toUserResponse(profile)))
}

// Delete soft-deletes an account.
//
// @Summary      Delete account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return notFoundByID(err, id)
	}

	metrics.UserLifecycleTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, envelope("User deleted successfully.", nil))
}

// Restore undoes a soft delete.
//
// @Summary      Restore account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{id}/restore [post]
func (h *UserHandler) Restore(c echo.Context) error {
	id := c.Param("id")
	profile, err := h.service.Restore(c.Request().Context(), id)
	if err != nil {
		return notFoundByID(err, id)
	}

	metrics.UserLifecycleTotal.WithLabelValues("restore").Inc()
	return c.JSON(http.StatusOK, envelope("User restored successfully.", toUserResponse(profile)))
}

// GetSelf returns the caller's own profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/me [get]
func (h *UserHandler) GetSelf(c echo.Context) error {
	userID, err := selfID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetSelf(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope("Profile retrieved successfully.", toUserResponse(profile)))
}

// UpdateSelf changes the caller's own profile. Roles and the activity flag
// cannot be changed this way.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "New values"
// @Success      200   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/me [put]
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	userID, err := selfID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.UpdateSelf(c.Request().Context(), userID, toUpdateProfileInput(req))
	if err != nil {
		return err
	}

	metrics.UserLifecycleTotal.WithLabelValues("update_self").Inc()
	return c.JSON(http.StatusOK, envelope("Profile updated successfully.", toUserResponse(profile)))
}

// notFoundByID names the id in not-found responses.
func notFoundByID(err error, id string) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("User with ID %s was not found.", id)).SetInternal(err)
	}
	return err
}
