package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"agu/internal/core/application/services"
	"agu/internal/pkg/either"

	"github.com/labstack/echo/v4"
)

// ProblemContentType is the media type of RFC 7807 error bodies.
const ProblemContentType = "application/problem+json"

// Problem is an RFC 7807 problem detail.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func statusFor(c services.Category) int {
	switch c {
	case services.CategoryInvalid:
		return http.StatusBadRequest
	case services.CategoryNotFound:
		return http.StatusNotFound
	case services.CategoryConflict:
		return http.StatusConflict
	case services.CategoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// problemType turns an error kind name such as DNOAlreadyExists into dno-already-exists.
func problemType(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return "urn:agu:problem:" + b.String()
}

func writeProblem(c echo.Context, p Problem) error {
	if p.Instance == "" {
		p.Instance = c.Request().URL.Path
	}
	c.Response().Header().Set(echo.HeaderContentType, ProblemContentType)
	c.Response().WriteHeader(p.Status)
	return c.Echo().JSONSerializer.Serialize(c, p, "")
}

func failureProblem(f services.Failure) Problem {
	status := statusFor(f.Category())
	return Problem{
		Type:   problemType(f.String()),
		Title:  http.StatusText(status),
		Status: status,
		Detail: f.String(),
	}
}

func badRequest(c echo.Context, detail string) error {
	return writeProblem(c, Problem{
		Type:   "urn:agu:problem:bad-request",
		Title:  http.StatusText(http.StatusBadRequest),
		Status: http.StatusBadRequest,
		Detail: detail,
	})
}

// respond writes the Right value with status, or the Left value as a problem.
// A Go error is left to the echo error handler.
func respond[L services.Failure, R any](
	c echo.Context,
	res either.Either[L, R],
	err error,
	status int,
	body func(R) any,
) error {
	if err != nil {
		return err
	}
	return either.Fold(res,
		func(f L) error { return writeProblem(c, failureProblem(f)) },
		func(v R) error {
			if body == nil {
				return c.NoContent(status)
			}
			return c.JSON(status, body(v))
		},
	)
}

// ErrorHandler renders every error reaching echo as a problem. Unexpected
// errors are logged and hidden behind a 500.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		detail := ""
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			}
		} else {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if writeErr := writeProblem(c, Problem{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: detail,
		}); writeErr != nil {
			logger.Error("problem write failed", "error", writeErr)
		}
	}
}
