package domain

import (
	"errors"
	"time"
)

// ErrUnknownEnumValue is returned by the Parse functions when a value is outside its closed set.
var ErrUnknownEnumValue = errors.New("unknown enum value")

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
