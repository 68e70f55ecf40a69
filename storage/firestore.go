package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fljobs/backend/config"
	"github.com/fljobs/backend/models"
)

const (
	usersCollection = "users"
	jobsCollection  = "job_listings"
)

// FirestoreClient persists users and job listings in Firestore.
// The catalog is served from the seed data.
type FirestoreClient struct {
	*SeedCatalog

	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{SeedCatalog: NewSeedCatalog(), client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// CreateUser creates a new user document keyed by email
func (f *FirestoreClient) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	// Email is the document ID so uniqueness is enforced by Create
	docRef := f.client.Collection(usersCollection).Doc(normalizeEmail(user.Email))
	if _, err := docRef.Create(ctx, user); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (f *FirestoreClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	doc, err := f.client.Collection(usersCollection).Doc(normalizeEmail(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by the id stored in the token subject
func (f *FirestoreClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	iter := f.client.Collection(usersCollection).Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}
	return &user, nil
}

// UpdateUser overwrites the profile fields of an existing user
func (f *FirestoreClient) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	docRef := f.client.Collection(usersCollection).Doc(normalizeEmail(user.Email))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "name", Value: user.Name},
		{Path: "phone", Value: user.Phone},
		{Path: "location", Value: user.Location},
		{Path: "experience", Value: user.Experience},
		{Path: "education", Value: user.Education},
		{Path: "skills", Value: user.Skills},
		{Path: "languages", Value: user.Languages},
		{Path: "availability", Value: user.Availability},
		{Path: "preferred_location", Value: user.PreferredLocation},
		{Path: "avatar", Value: user.Avatar},
		{Path: "updatedAt", Value: user.UpdatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// CreateJob stores a job listing under its ID
func (f *FirestoreClient) CreateJob(ctx context.Context, job *models.JobListing) error {
	if _, err := f.client.Collection(jobsCollection).Doc(job.ID).Create(ctx, job); err != nil {
		return fmt.Errorf("failed to create job listing: %w", err)
	}
	return nil
}

// GetJob retrieves a job listing by ID
func (f *FirestoreClient) GetJob(ctx context.Context, id string) (*models.JobListing, error) {
	doc, err := f.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job listing: %w", err)
	}
	return jobFromDoc(doc)
}

// ListJobsByOwner returns the user's listings, newest first
func (f *FirestoreClient) ListJobsByOwner(ctx context.Context, userID string) ([]*models.JobListing, error) {
	iter := f.client.Collection(jobsCollection).Where("created_by", "==", userID).Documents(ctx)
	defer iter.Stop()

	jobs := make([]*models.JobListing, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query job listings: %w", err)
		}

		job, err := jobFromDoc(doc)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	// sorted here to avoid a composite index on created_by + created_at
	sortNewestFirst(jobs)
	return jobs, nil
}

func jobFromDoc(doc *firestore.DocumentSnapshot) (*models.JobListing, error) {
	var job models.JobListing
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job listing: %w", err)
	}
	job.ID = doc.Ref.ID
	return &job, nil
}

var _ Store = (*FirestoreClient)(nil)
