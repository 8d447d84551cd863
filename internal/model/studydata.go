package model

import "time"

// StudyData is one week's worth of session material for a study group:
// the week number, session date, slide descriptions, and the questions
// members raised against the slides.
//
// Questions is an embedded collection — the questions live inside the
// StudyData document and are persisted together with it. No question
// exists without a parent StudyData.
//
// StudyGroupID must reference an existing StudyGroup. The check is done by
// lookup at create/update time, not by a storage constraint.
type StudyData struct {
	ID           string       `json:"id"`
	Week         int          `json:"week"`
	Date         time.Time    `json:"date"`
	SlideInfo    []string     `json:"slideInfo"`
	StudyGroupID string       `json:"studyGroupId"`
	Questions    QuestionList `json:"questions"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Question is a member question about one slide of a study session.
// Like is a non-negative endorsement counter; it never goes below zero.
type Question struct {
	ID            string    `json:"id"`
	User          string    `json:"user"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Like          int       `json:"like"`
	SlideOrder    int       `json:"slideOrder"`
	SlideImageURL string    `json:"slideImageURL"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
