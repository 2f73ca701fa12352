package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	jsonKeyError   = "error"
	jsonKeySuccess = "success"
	jsonKeyID      = "id"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondSuccess(c echo.Context, status int) error {
	return c.JSON(status, map[string]interface{}{jsonKeySuccess: true})
}

func respondCreated(c echo.Context, status int, id string) error {
	return c.JSON(status, map[string]interface{}{jsonKeySuccess: true, jsonKeyID: id})
}
