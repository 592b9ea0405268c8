package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
)

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("email already registered")

type ParticipantStore struct {
	db *gorm.DB
}

func NewParticipantStore(db *gorm.DB) *ParticipantStore {
	return &ParticipantStore{db: db}
}

func (s *ParticipantStore) FindByID(ctx context.Context, id uint) (*models.Participant, error) {
	var p models.Participant
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "participant", id)
	}
	return &p, nil
}

func (s *ParticipantStore) FindByEmail(ctx context.Context, email string) (*models.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var p models.Participant
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, notFound(err, "participant", email)
	}
	return &p, nil
}

// Create stores p with a normalised email.
func (s *ParticipantStore) Create(ctx context.Context, p *models.Participant) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
