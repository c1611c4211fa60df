package handler

// createPostRequest binds the multipart form fields of POST /api/posts.
// The image file arrives separately under the "image" field.
type createPostRequest struct {
	Title   string `json:"title" form:"title" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

// updatePostRequest is the allow-listed PATCH body. Unknown fields are
// ignored; absent fields stay untouched.
type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// sweepResponse reports how many records a maintenance sweep removed.
type sweepResponse struct {
	Deleted int64 `json:"deleted"`
}
