package storage

import (
	"context"
	"errors"

	"github.com/fljobs/backend/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Catalog serves the read-only marketplace data
type Catalog interface {
	ListStores(ctx context.Context) ([]models.Store, error)
	GetStore(ctx context.Context, id int) (*models.Store, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListLocationStores(ctx context.Context, location string) ([]models.LocationStore, error)
	ListLocationJobs(ctx context.Context, location string) ([]models.LocationJob, error)
	GetLocationJob(ctx context.Context, id int) (*models.LocationJob, error)
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	GetCandidate(ctx context.Context, id int) (*models.Candidate, error)
}

// Store persists accounts and job listings on top of the catalog
type Store interface {
	Catalog

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	CreateJob(ctx context.Context, job *models.JobListing) error
	GetJob(ctx context.Context, id string) (*models.JobListing, error)
	ListJobsByOwner(ctx context.Context, userID string) ([]*models.JobListing, error)

	Close() error
}
