package domain

import "time"

// ActivityAction identifies the kind of user action recorded in the
// audit trail.
type ActivityAction string

const (
	ActionLogin             ActivityAction = "login"
	ActionLogout            ActivityAction = "logout"
	ActionRegistration      ActivityAction = "registration"
	ActionRecordAdded       ActivityAction = "record_added"
	ActionMedicineAdded     ActivityAction = "medicine_added"
	ActionPrescriptionAdded ActivityAction = "prescription_added"
	ActionProfileUpdated    ActivityAction = "profile_updated"
	ActionProviderApproved  ActivityAction = "provider_approved"
	ActionProviderRejected  ActivityAction = "provider_rejected"
)

// Display returns the human-readable label for the action.
func (a ActivityAction) Display() string {
	switch a {
	case ActionLogin:
		return "User Login"
	case ActionLogout:
		return "User Logout"
	case ActionRegistration:
		return "User Registration"
	case ActionRecordAdded:
		return "Health Record Added"
	case ActionMedicineAdded:
		return "Medicine Added"
	case ActionPrescriptionAdded:
		return "Prescription Added"
	case ActionProfileUpdated:
		return "Profile Updated"
	case ActionProviderApproved:
		return "Provider Approved"
	case ActionProviderRejected:
		return "Provider Rejected"
	default:
		return string(a)
	}
}

// ActivityLog is one entry in the per-user audit trail.
type ActivityLog struct {
	ID        uint
	UserID    uint
	Action    ActivityAction
	Details   string
	IPAddress string
	CreatedAt time.Time
}
