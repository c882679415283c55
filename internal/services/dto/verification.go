package dto

import "ume_backend/internal/models"

type VerificationResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	UserID           uint   `json:"user_id"`
	AvatarPath       string `json:"avatar_path"`
	VerificationPath string `json:"verification_path"`
}

type VerificationStatusResponse struct {
	Success bool          `json:"success"`
	Status  models.Status `json:"status"`
}
