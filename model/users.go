package model

import "github.com/dgrijalva/jwt-go"

type User struct {
	ID         int    `json:"id" validate:"numeric,gte=0"`
	FirstNames string `json:"firstNames" validate:"required,min=1,max=50"`
	LastNames  string `json:"lastNames" validate:"required,min=1,max=50"`
	Active     bool   `json:"active"`
	Email      string `json:"email" validate:"required,email,max=50"`
	Password   string `json:"password,omitempty"` // stored and compared as-is, legacy schema
}

type UserToken struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

type UserLogin struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
