package handlers

import (
	"errors"
	"net/http"

	"wiki_system/internal/models"
	"wiki_system/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInternal        = "internal error"
	errInvalidBodyPref = "invalid body: "
)

// statusFor maps domain errors onto HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyCredentials),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrEmptyContent):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrNotAuthenticated),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrTitleConflict),
		errors.Is(err, models.ErrIllegalTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides storage details behind a generic message.
func errorMessage(err error, code int) string {
	if code == http.StatusInternalServerError {
		return errInternal
	}
	for _, known := range []error{
		models.ErrEmptyCredentials, models.ErrEmptyTitle, models.ErrEmptyContent,
		models.ErrInvalidCredentials, models.ErrNotAuthenticated, models.ErrInvalidToken,
		models.ErrSessionNotFound, models.ErrNotFound, models.ErrDuplicateUser,
		models.ErrTitleConflict, models.ErrIllegalTransition,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// respondState writes the outcome of a session action: the resulting state,
// plus an error when the action was rejected.
func (h *Handler) respondState(c *gin.Context, st session.State, err error, logKey string) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"status": statusOK, "state": st})
		return
	}
	code := statusFor(err)
	if code == http.StatusInternalServerError && h.log != nil {
		h.log.Errorw(logKey, "err", err, "session", st.SessionID)
	}
	c.JSON(code, gin.H{"error": errorMessage(err, code), "state": st})
}

// logAndJSONError writes an error response for non-session endpoints.
func (h *Handler) logAndJSONError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code := statusFor(err)
	if code == http.StatusInternalServerError && h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": errorMessage(err, code)})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
