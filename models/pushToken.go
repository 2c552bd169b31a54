package models

import "time"

type PushToken struct {
	UserPushTokenID int       `json:"user_push_token_id" db:"user_push_token_id" goqu:"skipinsert"`
	UserID          string    `json:"user_id" db:"user_id"`
	PushToken       string    `json:"push_token" db:"push_token"`
	Platform        string    `json:"platform" db:"platform"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type PushTokenRequest struct {
	User_ID   string `json:"user_id" binding:"required"`
	PushToken string `json:"push_token" binding:"required"`
	Platform  string `json:"platform" binding:"required,oneof=ios android"`
}
