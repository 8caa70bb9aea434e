package dto

// Request DTOs

// CreateAppointmentRequest keeps date and time as submitted
type CreateAppointmentRequest struct {
	PatientID int64  `validate:"required,min=1"`
	DoctorID  int64  `validate:"required,min=1"`
	Date      string `validate:"required,max=20"`
	Time      string `validate:"required,max=20"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    int64  `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// BookingOptionsResponse lists what the booking form can choose from
type BookingOptionsResponse struct {
	Patients []PatientResponse `json:"patients"`
	Doctors  []DoctorResponse  `json:"doctors"`
}
