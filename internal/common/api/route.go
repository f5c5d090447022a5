package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's Api type so Fx can collect them
// into the "routes" group and register them in one pass.
type Route interface {
	Setup(app *fiber.App)
}

// Result is the JSON envelope every workflow mutation returns.
type Result struct {
	Success bool         `json:"success"`
	Error   *ResultError `json:"error,omitempty"`
}

type ResultError struct {
	Message string `json:"message"`
}

func OK() Result {
	return Result{Success: true}
}

func Fail(err error) Result {
	return Result{Success: false, Error: &ResultError{Message: err.Error()}}
}
