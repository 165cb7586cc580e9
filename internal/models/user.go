package models

import "time"

type User struct {
	UserID       int       `json:"user_id"`
	FirstName    string    `json:"first_name" validate:"required,min=2,max=150"`
	LastName     string    `json:"last_name" validate:"required,min=2,max=150"`
	Email        string    `json:"email" validate:"required,email"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registered_at"`
	Deletable
}

// Rating is a per (user, book) score between 1 and 5. A user has at most
// one rating per book; repeated submissions overwrite the value.
type Rating struct {
	RatingID int `json:"rating_id"`
	UserID   int `json:"user_id"`
	BookID   int `json:"book_id"`
	Value    int `json:"value"`
}

type Review struct {
	ReviewID  int       `json:"review_id"`
	UserID    int       `json:"user_id"`
	BookID    int       `json:"book_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Deletable
}
