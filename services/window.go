package services

import (
	"time"

	"github.com/vnkhanh/survey-kit/models"
)

// IsActive reports whether now lies inside [ValidFrom, ValidUntil]. Both ends
// are inclusive; an unset bound leaves that side open.
func IsActive(s *models.Survey, now time.Time) bool {
	if s.ValidFrom != nil && now.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidUntil != nil && now.After(*s.ValidUntil) {
		return false
	}
	return true
}
