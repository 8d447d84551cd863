// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account on the study platform.
//
// The ID is not generated here — sign-in happens upstream against an OAuth
// provider, and the caller derives the ID by concatenating the provider name
// and the provider-assigned id (e.g. "kakao" + "12345" → "kakao12345").
// Keeping the derivation at the boundary means two providers can never
// collide on the same numeric id.
//
// Email is intended to be unique but is enforced by a lookup before insert,
// not by a storage constraint — matching the behaviour of the document store
// this service fronts.
type User struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
	IsPremium    bool      `json:"isPremium"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
