package entity

import "time"

// Patient represents a patient record
type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Condition string    `gorm:"type:varchar(200)" json:"condition"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
