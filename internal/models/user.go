package models

import "time"

// Role tags stored on a user profile. They drive admin-menu visibility on
// the client and route authorization on the backend.
const (
	RoleAdmin     = "admin"
	RoleCouncil   = "council"
	RoleLegal     = "legal"
	RoleAdvocacy  = "advocacy"
	RoleConsumer  = "consumer"
	RoleOmbudsman = "ombudsman"
	RoleCounter   = "counter"
	RoleCitizen   = "citizen"
)

// ValidRoles is the fixed set of role tags a profile may carry.
var ValidRoles = map[string]bool{
	RoleAdmin:     true,
	RoleCouncil:   true,
	RoleLegal:     true,
	RoleAdvocacy:  true,
	RoleConsumer:  true,
	RoleOmbudsman: true,
	RoleCounter:   true,
	RoleCitizen:   true,
}

// User represents a citizen's profile document. The Firebase Auth UID is
// the Firestore document ID. Profiles are created at registration and
// mutated by the user or an admin; they are never deleted in-app.
type User struct {
	ID             string    `json:"id" firestore:"-"`
	Name           string    `json:"name" firestore:"name"`
	Email          string    `json:"email" firestore:"email"`
	Phone          string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	DocumentNumber string    `json:"documentNumber,omitempty" firestore:"documentNumber,omitempty"`
	Address        string    `json:"address,omitempty" firestore:"address,omitempty"`
	Number         string    `json:"number,omitempty" firestore:"number,omitempty"`
	Complement     string    `json:"complement,omitempty" firestore:"complement,omitempty"`
	Neighborhood   string    `json:"neighborhood,omitempty" firestore:"neighborhood,omitempty"`
	City           string    `json:"city,omitempty" firestore:"city,omitempty"`
	State          string    `json:"state,omitempty" firestore:"state,omitempty"`
	PostalCode     string    `json:"postalCode,omitempty" firestore:"postalCode,omitempty"`
	Sex            string    `json:"sex,omitempty" firestore:"sex,omitempty"`
	MaritalStatus  string    `json:"maritalStatus,omitempty" firestore:"maritalStatus,omitempty"`
	Role           string    `json:"role" firestore:"role"`
	AvatarData     string    `json:"avatarData,omitempty" firestore:"avatarData,omitempty"` // inline base64 image
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Snapshot returns the profile fields embedded into a submission at filing
// time, so later profile edits do not retroactively change the record.
func (u *User) Snapshot() *ProfileSnapshot {
	return &ProfileSnapshot{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		DocumentNumber: u.DocumentNumber,
		Address:        u.Address,
		City:           u.City,
		State:          u.State,
		PostalCode:     u.PostalCode,
	}
}
