package models

import "time"

// Notification is written when an admin action moves a non-anonymous
// submission. It is mutated only by marking it read, never deleted.
type Notification struct {
	ID           string    `json:"id" firestore:"-"`
	TargetUserID string    `json:"targetUserId" firestore:"targetUserId"`
	UserEmail    string    `json:"userEmail,omitempty" firestore:"userEmail,omitempty"`
	Title        string    `json:"title" firestore:"title"`
	Body         string    `json:"body" firestore:"body"`
	Domain       string    `json:"domain" firestore:"domain"`
	Protocol     string    `json:"protocol" firestore:"protocol"` // originating submission ID
	IsRead       bool      `json:"isRead" firestore:"isRead"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
