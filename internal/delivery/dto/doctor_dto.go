package dto

import "github.com/google/uuid"

// Request DTOs

type CreateDoctorRequest struct {
	Name string `validate:"required,max=100"`
}

// Response DTOs

type DoctorResponse struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
