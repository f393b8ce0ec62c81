package services

import (
	"strings"
	"time"

	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/models"
)

// UserSeeder ensures the configured allow-listed accounts exist and carry
// the allowed flag. The original system hands out this permission through
// a hosted claim-setting endpoint; here the allow-list comes from config.
type UserSeeder struct {
	userRepo UserRepository
}

// NewUserSeeder creates a new user seeder
func NewUserSeeder(userRepo UserRepository) *UserSeeder {
	return &UserSeeder{
		userRepo: userRepo,
	}
}

// SeedAllowedUsers creates an account per allow-listed email if missing,
// and flips the allowed flag on for accounts that already exist without it.
// New accounts get defaultPassword and should change it after first login.
func (s *UserSeeder) SeedAllowedUsers(allowedEmails []string, defaultPassword string) error {
	var existingCount, createdCount, updatedCount int

	for i, email := range allowedEmails {
		existing, err := s.userRepo.GetUserByEmail(email)
		if err == nil && existing != nil {
			if !existing.Allowed {
				existing.Allowed = true
				if err := s.userRepo.UpdateUser(existing); err != nil {
					logging.Errorf("Failed to update allowed flag for %s: %v", email, err)
					continue
				}
				updatedCount++
			} else {
				existingCount++
			}
			continue
		}

		user := &models.User{
			ID:        i,
			Name:      nameFromEmail(email),
			Email:     email,
			Allowed:   true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := user.HashPassword(defaultPassword); err != nil {
			logging.Errorf("Failed to hash password for %s: %v", email, err)
			continue
		}

		if err := s.userRepo.CreateUser(user); err != nil {
			logging.Errorf("Failed to create user %s: %v", email, err)
			continue
		}

		logging.Infof("Created allowed user %s with ID %d", email, user.ID)
		createdCount++
	}

	if existingCount > 0 || createdCount > 0 || updatedCount > 0 {
		logging.Infof("Completed seeding users - %d existing, %d created, %d updated",
			existingCount, createdCount, updatedCount)
	}
	return nil
}

// nameFromEmail derives a display name from the email local part
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	return strings.ToUpper(local)
}
