package models

import "time"

// PanicContact is the trusted contact configured for the women's-advocacy
// panic button, keyed by the owner's UID. Created or overwritten by the
// user; read at panic-trigger time.
type PanicContact struct {
	UserID    string    `json:"userId" firestore:"-"`
	Phone     string    `json:"phone" firestore:"phone"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
