package service

import (
	"context"
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrInvalidProfile    = errors.New("profile validation failed")
	ErrNotStudentAccount = errors.New("profile operations require a student account")
)

// --- Service Interface ---
type StudentService interface {
	// GetProfile returns the onboarding profile, or ErrProfileMissing when
	// the student has not completed onboarding yet.
	GetProfile(ctx context.Context, studentID primitive.ObjectID) (*domain.Profile, error)
	// SetProfile validates and stores the onboarding snapshot. A stored
	// profile is the precondition for plan generation.
	SetProfile(ctx context.Context, studentID primitive.ObjectID, profile domain.Profile) (*domain.Profile, error)
}

// --- Service Implementation ---

// studentService implements the StudentService interface.
type studentService struct {
	userRepo repository.UserRepository
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(userRepo repository.UserRepository) StudentService {
	return &studentService{userRepo: userRepo}
}

// GetProfile retrieves the onboarding profile for a student.
func (s *studentService) GetProfile(ctx context.Context, studentID primitive.ObjectID) (*domain.Profile, error) {
	if studentID == primitive.NilObjectID {
		return nil, errors.New("student ID is required")
	}

	profile, err := s.userRepo.GetProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}
	return profile, nil
}

// SetProfile validates and persists the onboarding snapshot.
func (s *studentService) SetProfile(ctx context.Context, studentID primitive.ObjectID, profile domain.Profile) (*domain.Profile, error) {
	if studentID == primitive.NilObjectID {
		return nil, errors.New("student ID is required")
	}

	user, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if !user.IsStudent() {
		return nil, ErrNotStudentAccount
	}

	if err := validateProfile(&profile); err != nil {
		return nil, err
	}

	if err := s.userRepo.SetProfile(ctx, studentID, &profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// validateProfile normalizes optional fields and rejects out-of-range values.
func validateProfile(p *domain.Profile) error {
	switch p.FitnessLevel {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return ErrInvalidProfile
	}

	switch p.EquipmentContext {
	case domain.EquipmentBodyweight, domain.EquipmentHome, domain.EquipmentBasicGym, domain.EquipmentFullGym:
	default:
		return ErrInvalidProfile
	}

	if p.WeeklyFrequency < 1 || p.WeeklyFrequency > 7 {
		return ErrInvalidProfile
	}
	if p.ActivityLevel < 1 || p.ActivityLevel > 5 {
		return ErrInvalidProfile
	}
	if p.SessionMinutes < 0 || p.SessionMinutes > 240 {
		return ErrInvalidProfile
	}
	if p.PreferredSets < 0 {
		return ErrInvalidProfile
	}

	// Optional enums: empty means "no preference", anything else must be valid.
	switch p.RepRangeCategory {
	case "", domain.RepRangeStrength, domain.RepRangeHypertrophy, domain.RepRangeEndurance:
	default:
		return ErrInvalidProfile
	}
	switch p.RestPreference {
	case "", domain.RestShort, domain.RestMedium, domain.RestLong:
	default:
		return ErrInvalidProfile
	}

	return nil
}
