package model

import "time"

// StudyGroup is a group of users studying together.
//
// Password and Salt are stored as opaque strings — hashing happens in the
// sign-up service upstream, this layer never derives or verifies them.
//
// People holds member user ids in join order. Membership is a weak
// reference into the user collection: deleting a User does not cascade
// here, and the list only changes through the explicit member add/remove
// operations.
type StudyGroup struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Password  string    `json:"password"`
	Salt      string    `json:"salt"`
	Owner     string    `json:"owner"`
	MaxPeople int       `json:"maxPeople"`
	IsPremium bool      `json:"isPremium"`
	People    []string  `json:"people"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
