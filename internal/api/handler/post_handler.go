package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miniblog/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
	files   ports.FileManager
}

func NewPostHandler(service ports.PostService, files ports.FileManager) *PostHandler {
	return &PostHandler{service: service, files: files}
}

// List handles GET /api/posts.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"posts": posts})
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"post": post})
}

// Create handles POST /api/posts (multipart, optional "image" field).
//
// @Summary      Create a post
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  true   "Content"
// @Param        image    formData  file    false  "Image"
// @Success      201  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upload, err := stageUpload(c, h.files, "image", "post")
	if err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		OwnerID: userID,
		Upload:  upload,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"post": post})
}

// Update handles PATCH /api/posts/:id.
//
// @Summary      Update a post's title or content
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.PostPatch{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"post": post})
}

// Delete handles DELETE /api/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil)
}

// Sweep handles POST /api/posts/filter — removes every post without an image.
//
// @Summary      Delete all posts without an image
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /posts/filter [post]
func (h *PostHandler) Sweep(c echo.Context) error {
	n, err := h.service.Sweep(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"posts": sweepResponse{Deleted: n}})
}
