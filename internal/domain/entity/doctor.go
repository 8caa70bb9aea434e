package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a doctor that appointments can be booked with.
// UserID links the doctor to the doctor-role account that may view its appointments.
type Doctor struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null;index" json:"name"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsLinked reports whether the doctor is attached to a user account
func (d *Doctor) IsLinked() bool {
	return d.UserID != nil
}
