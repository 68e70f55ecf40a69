package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fljobs/backend/models"
)

// MemoryStore keeps users and job listings in process memory.
// Records are copied on the way in and out.
type MemoryStore struct {
	*SeedCatalog

	mu      sync.RWMutex
	users   map[string]*models.User // by id
	byEmail map[string]string       // lowercased email -> id
	jobs    map[string]*models.JobListing
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore over the seed catalog
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		SeedCatalog: NewSeedCatalog(),
		users:       make(map[string]*models.User),
		byEmail:     make(map[string]string),
		jobs:        make(map[string]*models.JobListing),
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new user. The caller assigns the ID.
func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, exists := m.byEmail[email]; exists {
		return ErrEmailTaken
	}

	now := m.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := copyUser(user)
	m.users[user.ID] = stored
	m.byEmail[email] = user.ID
	return nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return copyUser(m.users[id]), nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return copyUser(user), nil
}

// UpdateUser replaces the stored profile. Email changes are not supported.
func (m *MemoryStore) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}

	user.Email = existing.Email
	user.Password = existing.Password
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = m.now()
	m.users[user.ID] = copyUser(user)
	return nil
}

func (m *MemoryStore) CreateJob(_ context.Context, job *models.JobListing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	stored := *job
	m.jobs[job.ID] = &stored
	return nil
}

func (m *MemoryStore) GetJob(_ context.Context, id string) (*models.JobListing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	out := *job
	return &out, nil
}

// ListJobsByOwner returns the user's listings, newest first
func (m *MemoryStore) ListJobsByOwner(_ context.Context, userID string) ([]*models.JobListing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*models.JobListing, 0)
	for _, job := range m.jobs {
		if job.CreatedBy == userID {
			out := *job
			jobs = append(jobs, &out)
		}
	}
	sortNewestFirst(jobs)
	return jobs, nil
}

func (m *MemoryStore) Close() error { return nil }

func sortNewestFirst(jobs []*models.JobListing) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
}

func copyUser(u *models.User) *models.User {
	out := *u
	out.Skills = cloneStrings(u.Skills)
	out.Languages = cloneStrings(u.Languages)
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

var _ Store = (*MemoryStore)(nil)
