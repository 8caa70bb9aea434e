package entity

import "time"

// Appointment books a patient with a doctor. Date and Time are kept as the
// submitted strings; overlapping bookings are allowed.
type Appointment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID int64     `gorm:"not null;index" json:"patient_id"`
	DoctorID  int64     `gorm:"not null;index" json:"doctor_id"`
	Date      string    `gorm:"type:varchar(20);not null" json:"date"`
	Time      string    `gorm:"type:varchar(20);not null" json:"time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
