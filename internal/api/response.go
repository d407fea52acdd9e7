package api

import (
	"errors"
	"net/http"
	"os"

	"blog-service/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Errors     []common.FieldError `json:"errors,omitempty"`
	RetryAfter int                 `json:"retryAfter,omitempty"`
}

func respondData(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

func respondValidation(c echo.Context, fields []common.FieldError) error {
	return c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Validation error", Errors: fields})
}

func respondMessage(c echo.Context, code int, success bool, message string) error {
	return c.JSON(code, Response{Success: success, Message: message})
}

// respondError maps the structured error kind to a status. Message text
// is never inspected; unclassified errors become an opaque 500 and the
// detail stays in the log.
func respondError(c echo.Context, err error) error {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Msg("Unclassified handler error")
		return respondMessage(c, http.StatusInternalServerError, false, "Internal server error")
	}

	switch appErr.Kind {
	case common.KindValidation:
		return c.JSON(http.StatusBadRequest, Response{Success: false, Message: appErr.Message, Errors: appErr.Fields})
	case common.KindNotFound:
		return respondMessage(c, http.StatusNotFound, false, appErr.Message)
	case common.KindConflict:
		return respondMessage(c, http.StatusConflict, false, appErr.Message)
	case common.KindUnauthorized:
		return respondMessage(c, http.StatusUnauthorized, false, appErr.Message)
	case common.KindRateLimited:
		return respondMessage(c, http.StatusTooManyRequests, false, appErr.Message)
	default:
		return respondMessage(c, http.StatusInternalServerError, false, "Internal server error")
	}
}

// bindBody decodes the JSON body into a map for schema validation.
// A missing body is an empty map; malformed JSON is a 400.
func bindBody(c echo.Context) (map[string]any, error) {
	body := map[string]any{}
	if c.Request().Body == nil || c.Request().ContentLength == 0 {
		return body, nil
	}
	if err := c.Bind(&body); err != nil {
		return nil, common.Validation([]common.FieldError{{Field: "body", Message: "Invalid request payload"}})
	}
	return body, nil
}
