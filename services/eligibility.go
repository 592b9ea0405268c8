// Package services holds the survey participation rules: eligibility and
// entry limits, the active window, combined answer rules, slug assignment,
// submission and export. It depends on store interfaces only.
package services

import (
	"context"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

// DefaultLimitPerParticipant applies when a survey has no limit-per-participant setting.
const DefaultLimitPerParticipant = 1

// EntryCounter counts the entries a participant already submitted to a survey.
type EntryCounter interface {
	CountByParticipant(ctx context.Context, surveyID, participantID uint) (int64, error)
}

// AcceptsGuestEntries reads the accept-guest-entries setting (default false).
func AcceptsGuestEntries(s *models.Survey) (bool, error) {
	return utils.SettingBool(s.Settings, models.SettingAcceptGuestEntries, false)
}

// LimitPerParticipant returns the maximum number of entries a participant may
// submit, or nil when there is no limit. Surveys that accept guest entries
// never limit participants.
func LimitPerParticipant(s *models.Survey) (*int, error) {
	guests, err := AcceptsGuestEntries(s)
	if err != nil {
		return nil, err
	}
	if guests {
		return nil, nil
	}
	limit, err := utils.SettingInt(s.Settings, models.SettingLimitPerParticipant, DefaultLimitPerParticipant)
	if err != nil {
		return nil, err
	}
	if limit == -1 {
		return nil, nil
	}
	return &limit, nil
}

// Reasons reported by Evaluator.Check.
const (
	ReasonGuestsAccepted = "guest_entries_accepted"
	ReasonGuestsRejected = "guest_entries_not_accepted"
	ReasonUnlimited      = "unlimited"
	ReasonUnderLimit     = "under_limit"
	ReasonLimitReached   = "limit_reached"
)

// Eligibility is the outcome of an eligibility check.
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
	Limit    *int   `json:"limit"`
	Entries  int64  `json:"entries"`
}

type Evaluator struct {
	entries EntryCounter
}

func NewEvaluator(entries EntryCounter) *Evaluator {
	return &Evaluator{entries: entries}
}

// IsEligible decides whether participantID (nil for a guest) may submit a new
// entry to survey.
func (e *Evaluator) IsEligible(ctx context.Context, survey *models.Survey, participantID *uint) (bool, error) {
	res, err := e.Check(ctx, survey, participantID)
	if err != nil {
		return false, err
	}
	return res.Eligible, nil
}

// Check is IsEligible with the reason, the limit in force and the prior entry
// count. Entries are only counted when a limit applies.
func (e *Evaluator) Check(ctx context.Context, survey *models.Survey, participantID *uint) (Eligibility, error) {
	if participantID == nil {
		guests, err := AcceptsGuestEntries(survey)
		if err != nil {
			return Eligibility{}, err
		}
		if guests {
			return Eligibility{Eligible: true, Reason: ReasonGuestsAccepted}, nil
		}
		return Eligibility{Eligible: false, Reason: ReasonGuestsRejected}, nil
	}

	limit, err := LimitPerParticipant(survey)
	if err != nil {
		return Eligibility{}, err
	}
	if limit == nil {
		return Eligibility{Eligible: true, Reason: ReasonUnlimited}, nil
	}

	count, err := e.entries.CountByParticipant(ctx, survey.ID, *participantID)
	if err != nil {
		return Eligibility{}, err
	}
	res := Eligibility{Limit: limit, Entries: count}
	if int64(*limit) > count {
		res.Eligible = true
		res.Reason = ReasonUnderLimit
	} else {
		res.Reason = ReasonLimitReached
	}
	return res, nil
}
