package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniblog/blog-api/internal/core/domain"
	"github.com/miniblog/blog-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
	files   ports.FileManager
}

func NewUserHandler(service ports.UserService, files ports.FileManager) *UserHandler {
	return &UserHandler{service: service, files: files}
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": users})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"user": user})
}

// Register handles POST /api/users/register (multipart, optional "avatar").
//
// @Summary      Register a new user
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        firstName  formData  string  true   "First name"
// @Param        lastName   formData  string  true   "Last name"
// @Param        email      formData  string  true   "Email"
// @Param        password   formData  string  true   "Password"
// @Param        role       formData  string  false  "Role (user or admin)"
// @Param        avatar     formData  file    false  "Avatar"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upload, err := stageUpload(c, h.files, "avatar", "user")
	if err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		Upload:    upload,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"user": user})
}

// Login handles POST /api/users/login.
//
// @Summary      Login with email and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"token": token, "user": user})
}

// Update handles PATCH /api/users/:id (JSON or multipart with "avatar").
//
// @Summary      Update a user's profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "User id"
// @Param        avatar  formData  file    false  "Replacement avatar"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	avatar, err := stageUpload(c, h.files, "avatar", "user")
	if err != nil {
		return err
	}

	patch := ports.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), patch, avatar)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"user": user})
}

// Delete handles DELETE /api/users/:id. Admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil)
}

// Sweep handles POST /api/users/filter — removes every user without an avatar.
//
// @Summary      Delete all users without an avatar
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/filter [post]
func (h *UserHandler) Sweep(c echo.Context) error {
	n, err := h.service.Sweep(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"users": sweepResponse{Deleted: n}})
}
