package types

import "fmt"

// CustomError is the error shape middleware returns into the global Fiber
// error handler: an HTTP status, a client-facing message, and a machine
// type tag for logs. Handlers that can respond directly use the response
// helpers instead.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
