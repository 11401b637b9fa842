package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/logging"
	"github.com/ericogr/arena-battles/internal/service"

	"github.com/gin-gonic/gin"
)

func errorBody(msg, code, details string) gin.H {
	body := gin.H{constants.JSONKeyError: msg, constants.JSONKeyCode: code}
	if details != "" {
		body[constants.JSONKeyDetails] = details
	}
	return body
}

func statusForKind(k service.Kind) int {
	switch k {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindUnauthorized:
		return http.StatusForbidden
	case service.KindPreconditionFailed, service.KindInvalidRequest:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service failure onto the HTTP response. Untagged
// errors become a generic 500.
func respondError(c *gin.Context, err error) {
	se, ok := service.AsError(err)
	if !ok {
		logging.Error("unhandled error", err, logging.Fields{constants.LogFieldPath: c.FullPath()})
		c.JSON(http.StatusInternalServerError, errorBody(constants.ErrInternal, constants.CodeInternal, ""))
		return
	}
	c.JSON(statusForKind(se.Kind), errorBody(se.Message, se.Code, se.Details))
}

func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, errorBody(constants.ErrInvalidRequest, constants.CodeInvalidRequest, details))
}

func respondData(c *gin.Context, status int, data interface{}, msg string) {
	body := gin.H{constants.JSONKeyData: data}
	if msg != "" {
		body[constants.JSONKeyMessage] = msg
	}
	c.JSON(status, body)
}

// currentUserID returns the authenticated user set by AuthRequired.
func currentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

// MarshalForContext marshals v and removes every email field that does
// not belong to the session user so other users' emails are never exposed.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	currentEmail := ""
	if c != nil {
		currentEmail = c.GetString(constants.ContextKeyUserEmail)
	}
	redactEmails(out, currentEmail)
	return out, nil
}

// redactEmails walks a decoded JSON value and deletes any key containing
// "email" (case-insensitive) unless its value equals currentEmail.
func redactEmails(v interface{}, currentEmail string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			if strings.Contains(strings.ToLower(k), "email") {
				if s, ok := val.(string); ok && currentEmail != "" && s == currentEmail {
					continue
				}
				delete(vv, k)
				continue
			}
			redactEmails(val, currentEmail)
		}
	case []interface{}:
		for i := range vv {
			redactEmails(vv[i], currentEmail)
		}
	}
}
