package storage

import (
	"context"
	"fmt"

	"github.com/fljobs/backend/models"
)

const headshot = "https://readdy.ai/api/search-image?query=Professional%20headshot"

// DefaultAvatar is assigned to newly registered users
const DefaultAvatar = headshot

// SeedCatalog is the demo marketplace data served by every store backend
type SeedCatalog struct {
	stores         []models.Store
	locations      []models.Location
	locationStores []models.LocationStore
	locationJobs   []models.LocationJob
	candidates     []models.Candidate
}

// NewSeedCatalog returns the catalog for the Hyderabad launch
func NewSeedCatalog() *SeedCatalog {
	return &SeedCatalog{
		stores: []models.Store{
			{ID: 1, Name: "Weymans-Palo", Image: "https://readdy.ai/api/search-image?query=Grocery%20store%20front", Street: "Street No.7", Distance: "15$", Owner: models.Owner{Name: "Alex", Avatar: headshot}},
			{ID: 2, Name: "LST-Margo", Image: "https://readdy.ai/api/search-image?query=Small%20convenience%20store", Street: "Street No.8", Distance: "15$", Owner: models.Owner{Name: "Sarah", Avatar: headshot}},
			{ID: 3, Name: "Original-shaine", Image: "https://readdy.ai/api/search-image?query=Clothing%20store", Street: "JUBILEE HILLS/HYDERABAD", Distance: "15$", Owner: models.Owner{Name: "Mike", Avatar: headshot}},
			{ID: 4, Name: "Google-Ram", Image: "https://readdy.ai/api/search-image?query=Colorful%20toy%20store", Street: "S.R ROAD/HYDERABAD", Distance: "15$", Owner: models.Owner{Name: "Priya", Avatar: headshot}},
		},
		locations: []models.Location{
			{ID: 1, Name: "Jubilee Hills", Area: "Western Hyderabad", Distance: "5 km"},
			{ID: 2, Name: "Banjara Hills", Area: "Central Hyderabad", Distance: "7 km"},
			{ID: 3, Name: "Hitech City", Area: "IT Hub", Distance: "12 km"},
			{ID: 4, Name: "Gachibowli", Area: "Financial District", Distance: "15 km"},
			{ID: 5, Name: "Secunderabad", Area: "Twin City", Distance: "10 km"},
			{ID: 6, Name: "Madhapur", Area: "IT Corridor", Distance: "11 km"},
			{ID: 7, Name: "Kukatpally", Area: "Residential Area", Distance: "18 km"},
			{ID: 8, Name: "Ameerpet", Area: "Commercial Center", Distance: "8 km"},
		},
		locationStores: []models.LocationStore{
			{ID: 1, Name: "Raymond-Zainor", Image: "https://readdy.ai/api/search-image?query=Upscale%20clothing%20store", Rating: "20$", Owner: models.Owner{Name: "Raymond", Avatar: headshot}},
			{ID: 2, Name: "Original-zainor", Image: "https://readdy.ai/api/search-image?query=Modern%20clothing%20boutique", Rating: "30$", Owner: models.Owner{Name: "Original", Avatar: headshot}},
		},
		locationJobs: []models.LocationJob{
			{ID: 1, StoreName: "Raymond-Zainor", Position: "Sales Associate", Location: "Jubilee Hills", Wage: "$18/hour", Requirements: "Fashion retail experience, customer service skills", MatchScore: 85},
			{ID: 2, StoreName: "Original-zainor", Position: "Store Manager", Location: "Jubilee Hills", Wage: "$25/hour", Requirements: "3+ years retail management, fashion knowledge", MatchScore: 72},
		},
		candidates: []models.Candidate{
			{ID: 1, Name: "Priya Sharma", Skills: "Retail sales, customer service, inventory management", Experience: "2 years in fashion retail", Education: "Bachelor's in Business Administration", Availability: "Full-time, weekends", Avatar: headshot},
			{ID: 2, Name: "Rahul Patel", Skills: "Food service, barista training, cash handling", Experience: "3 years in coffee shops", Education: "Associate's degree in Hospitality", Availability: "Part-time, evenings", Avatar: headshot},
		},
	}
}

func (c *SeedCatalog) ListStores(context.Context) ([]models.Store, error) {
	return append([]models.Store(nil), c.stores...), nil
}

func (c *SeedCatalog) GetStore(_ context.Context, id int) (*models.Store, error) {
	for _, s := range c.stores {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("store %d: %w", id, ErrNotFound)
}

func (c *SeedCatalog) ListLocations(context.Context) ([]models.Location, error) {
	return append([]models.Location(nil), c.locations...), nil
}

// ListLocationStores returns the featured stores. They are not yet tied to a neighbourhood.
func (c *SeedCatalog) ListLocationStores(context.Context, string) ([]models.LocationStore, error) {
	return append([]models.LocationStore(nil), c.locationStores...), nil
}

// ListLocationJobs returns jobs whose location equals the given name exactly
func (c *SeedCatalog) ListLocationJobs(_ context.Context, location string) ([]models.LocationJob, error) {
	jobs := make([]models.LocationJob, 0, len(c.locationJobs))
	for _, j := range c.locationJobs {
		if j.Location == location {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (c *SeedCatalog) GetLocationJob(_ context.Context, id int) (*models.LocationJob, error) {
	for _, j := range c.locationJobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, fmt.Errorf("location job %d: %w", id, ErrNotFound)
}

func (c *SeedCatalog) ListCandidates(context.Context) ([]models.Candidate, error) {
	return append([]models.Candidate(nil), c.candidates...), nil
}

func (c *SeedCatalog) GetCandidate(_ context.Context, id int) (*models.Candidate, error) {
	for _, cand := range c.candidates {
		if cand.ID == id {
			return &cand, nil
		}
	}
	return nil, fmt.Errorf("candidate %d: %w", id, ErrNotFound)
}
