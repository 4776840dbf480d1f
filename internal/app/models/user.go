package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // hashed, excluded from JSON
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	RoleType    RoleType   `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Session is an issued-token record; logout or the expiry sweep removes it.
type Session struct {
	ID        int64     `json:"sessionId"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
