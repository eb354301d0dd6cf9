package models

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // не отдаём наружу
	ProfilePicture string    `json:"profilePicture"`
	Theme          Theme     `json:"theme"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate leaves fields untouched when they are empty.
type ProfileUpdate struct {
	Name           string `json:"name" binding:"max=50"`
	Email          string `json:"email" binding:"omitempty,email"`
	ProfilePicture string `json:"profilePicture"`
	Password       string `json:"password" binding:"omitempty,min=6,max=72"`
}
