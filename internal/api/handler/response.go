package handler

import "github.com/labstack/echo/v4"

// successResponse is the envelope returned on every 2xx.
type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// respond wraps data in the success envelope.
func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Status: "success", Data: data})
}
