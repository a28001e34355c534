package service

import (
	"context"
	"testing"

	"fitcoach/coaching-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validProfile() domain.Profile {
	return domain.Profile{
		FitnessLevel:     domain.LevelIntermediate,
		Goals:            []string{"build_muscle"},
		WeeklyFrequency:  3,
		SessionMinutes:   45,
		EquipmentContext: domain.EquipmentHome,
		ActivityLevel:    3,
	}
}

func TestSetProfileRoundTrip(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewStudentService(userRepo)
	studentID := userRepo.addStudent(nil)

	_, err := svc.GetProfile(context.Background(), studentID)
	assert.ErrorIs(t, err, ErrProfileMissing)

	profile := validProfile()
	stored, err := svc.SetProfile(context.Background(), studentID, profile)
	require.NoError(t, err)
	assert.Equal(t, profile, *stored)

	got, err := svc.GetProfile(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, profile, *got)
}

func TestSetProfileValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Profile)
	}{
		{"bad fitness level", func(p *domain.Profile) { p.FitnessLevel = "elite" }},
		{"bad equipment", func(p *domain.Profile) { p.EquipmentContext = "garage" }},
		{"frequency too low", func(p *domain.Profile) { p.WeeklyFrequency = 0 }},
		{"frequency too high", func(p *domain.Profile) { p.WeeklyFrequency = 8 }},
		{"activity out of range", func(p *domain.Profile) { p.ActivityLevel = 6 }},
		{"negative session minutes", func(p *domain.Profile) { p.SessionMinutes = -5 }},
		{"bad rep range", func(p *domain.Profile) { p.RepRangeCategory = "max" }},
		{"bad rest preference", func(p *domain.Profile) { p.RestPreference = "none" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			svc := NewStudentService(userRepo)
			studentID := userRepo.addStudent(nil)

			profile := validProfile()
			tt.mutate(&profile)

			_, err := svc.SetProfile(context.Background(), studentID, profile)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestSetProfileRejectsCoachAccount(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewStudentService(userRepo)

	coachID := primitive.NewObjectID()
	userRepo.users[coachID] = &domain.User{ID: coachID, Role: domain.RoleCoach}

	_, err := svc.SetProfile(context.Background(), coachID, validProfile())
	assert.ErrorIs(t, err, ErrNotStudentAccount)
}

func TestSetProfileUnknownStudent(t *testing.T) {
	svc := NewStudentService(newFakeUserRepo())

	_, err := svc.SetProfile(context.Background(), primitive.NewObjectID(), validProfile())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
