package dto

import "time"

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	Role      string
}
