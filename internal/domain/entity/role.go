package entity

// Role represents a user role in the system
type Role string

// Role constants
const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleUser   Role = "user"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Capability names a gated action on the HTTP surface
type Capability string

const (
	CapViewDashboard    Capability = "view_dashboard"
	CapCreatePatient    Capability = "create_patient"
	CapViewPatients     Capability = "view_patients"
	CapCreateDoctor     Capability = "create_doctor"
	CapBookAppointment  Capability = "book_appointment"
	CapViewAppointments Capability = "view_appointments"
	CapViewAuditLogs    Capability = "view_audit_logs"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapViewDashboard:    true,
		CapCreatePatient:    true,
		CapViewPatients:     true,
		CapCreateDoctor:     true,
		CapBookAppointment:  true,
		CapViewAppointments: true,
		CapViewAuditLogs:    true,
	},
	RoleDoctor: {
		CapViewDashboard:    true,
		CapCreatePatient:    true,
		CapViewPatients:     true,
		CapViewAppointments: true,
	},
	RoleUser: {
		CapViewDashboard:    true,
		CapCreatePatient:    true,
		CapViewPatients:     true,
		CapBookAppointment:  true,
		CapViewAppointments: true,
	},
}

// Can is the single authorization predicate for every gated route.
// Unknown roles hold no capabilities.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
