package services

import (
	"strings"
	"sync"
	"time"

	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/models"
)

// MemoryUserRepository implements UserRepository in memory, for the
// no-database fallback mode and for tests
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	nextID int
}

// NewMemoryUserRepository creates a new in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int]*models.User),
	}
}

// GetUserByEmail retrieves a user by email (case-insensitive)
func (r *MemoryUserRepository) GetUserByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, database.ErrUserNotFound
}

// GetUserByID retrieves a user by ID
func (r *MemoryUserRepository) GetUserByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// CreateUser stores a new user
func (r *MemoryUserRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// UpdateUser replaces a stored user
func (r *MemoryUserRepository) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return database.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}
