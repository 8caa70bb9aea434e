package dto

// Request DTOs

type CreatePatientRequest struct {
	Name      string `validate:"required,max=100"`
	Age       int    `validate:"gte=0,lte=150"`
	Condition string `validate:"max=200"`
}

// Response DTOs

type PatientResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Condition string `json:"condition"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Query    string            `json:"query,omitempty"`
	Total    int               `json:"total"`
}
