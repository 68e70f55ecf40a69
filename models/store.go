package models

// Owner is the person running a store
type Owner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Store is a shop that hires through the marketplace
type Store struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Street   string `json:"street"`
	Distance string `json:"distance"`
	Owner    Owner  `json:"owner"`
}

// Location is a neighbourhood users can browse
type Location struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Area     string `json:"area"`
	Distance string `json:"distance"`
}

// LocationStore is a store shown on a neighbourhood page
type LocationStore struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Rating string `json:"rating"`
	Owner  Owner  `json:"owner"`
}
