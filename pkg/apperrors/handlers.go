package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope:
// {success:false, message, error:{code, domain, message, details}}.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   *AppError `json:"error,omitempty"`
}

var debugMode = true

// SetDebug controls whether technical error details are included in
// responses. Production runs with debug off.
func SetDebug(enabled bool) {
	debugMode = enabled
}

// HandleError renders err as the uniform error envelope on c.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("server error: %v", appErr.Error())
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
	}
	if debugMode {
		resp.Error = appErr
	} else if appErr.HTTPCode < 500 {
		// Client errors keep their structured detail. 5xx detail is
		// suppressed outside debug.
		resp.Error = appErr
	}

	c.JSON(appErr.HTTPCode, resp)
}

// AsAppError unwraps err into *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
