package model

import "time"

type User struct {
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"passwordHash"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
}
