package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

var actionValidator = newActionValidator()

func newActionValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeError(c, http.StatusBadRequest, resolveBindError(err, queryMessages, "invalid query"))
		return false
	}
	return true
}

// validateAction checks a websocket action message and returns a readable
// reason when it is rejected.
func validateAction(action wsAction) error {
	if err := actionValidator.Struct(action); err != nil {
		return errors.New(resolveBindError(err, actionMessages, "invalid action"))
	}
	return nil
}

var filterMessages = map[string]string{
	"filter": "filter value contains control characters",
}

var queryMessages = bindMessages{
	"Category":          filterMessages,
	"Genre":             filterMessages,
	"GameMode":          filterMessages,
	"PlayerPerspective": filterMessages,
	"Theme":             filterMessages,
	"Rating":            filterMessages,
}

var actionMessages = bindMessages{
	"Action": {
		"required": "action is required",
		"oneof":    "unknown action",
	},
	"ID": {
		"required_if": "id is required",
	},
	"Value": {
		"numeric": "value must be a number",
		"max":     "value is too long",
	},
	"Category":          filterMessages,
	"Genre":             filterMessages,
	"GameMode":          filterMessages,
	"PlayerPerspective": filterMessages,
	"Theme":             filterMessages,
	"Rating":            filterMessages,
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}
