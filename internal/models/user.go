package models

import "time"

// Registration is the input to account creation.
type Registration struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// RegisteredUser is what registration returns.
type RegisteredUser struct {
	Username  string `db:"username" json:"username"`
	Password  string `db:"password" json:"password"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone" json:"phone"`
}

// UserSummary holds the display attributes embedded in listings and messages.
type UserSummary struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Phone     string `db:"phone" json:"phone"`
}

// UserDetail is the single-user view.
type UserDetail struct {
	UserSummary
	JoinAt      time.Time  `db:"join_at" json:"join_at"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at"`
}

// LoginStamp is returned after a successful login timestamp update.
type LoginStamp struct {
	Username    string    `db:"username" json:"username"`
	LastLoginAt time.Time `db:"last_login_at" json:"last_login_at"`
}
