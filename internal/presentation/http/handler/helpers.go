package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/fishledger/pkg/apperror"
)

const dateLayout = "2006-01-02"

// GetOwnerID extracts the authenticated owner from the Gin context
func GetOwnerID(c *gin.Context) *uuid.UUID {
	ownerIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	ownerID, ok := ownerIDVal.(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		return nil
	}
	return &ownerID
}

// parseIDParam reads a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// parseDate reads an optional date given as YYYY-MM-DD or RFC 3339. A bare
// date is midnight UTC, or the end of that day when endOfDay is set.
func parseDate(raw, field string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperror.NewFieldValidationError(field, "Expected YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// bindError turns a request binding failure into a bad request
func bindError(err error) error {
	return apperror.NewBadRequestError("Invalid request body: " + err.Error())
}
