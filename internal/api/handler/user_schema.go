package handler

// registerRequest binds the multipart form fields of POST /api/users/register.
// The avatar file arrives separately under the "avatar" field.
type registerRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required"`
	LastName  string `json:"lastName" form:"lastName" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
	Role      string `json:"role" form:"role" validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// updateUserRequest is the allow-listed PATCH body. A replacement avatar is
// uploaded as a multipart file, never passed as a body field.
type updateUserRequest struct {
	FirstName *string `json:"firstName" form:"firstName"`
	LastName  *string `json:"lastName" form:"lastName"`
	Email     *string `json:"email" form:"email"`
	Role      *string `json:"role" form:"role"`
}
