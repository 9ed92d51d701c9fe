package model

import "time"

// User is the persisted user record. The unique index on email is the
// database-level backstop for the uniqueness pre-checks in the service layer:
// concurrent creates that both pass the pre-check still cannot both commit.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
