package models

import "time"

// AnonymousUserID is the sentinel stored as the submitter identifier when
// a citizen opts out of identification on an anonymous-capable domain.
const AnonymousUserID = "anonymous"

// ProfileSnapshot is the subset of the submitter's profile captured at
// submission time. It is omitted entirely for anonymous submissions.
type ProfileSnapshot struct {
	UserID         string `json:"userId" firestore:"userId"`
	Name           string `json:"name" firestore:"name"`
	Email          string `json:"email" firestore:"email"`
	Phone          string `json:"phone,omitempty" firestore:"phone,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty" firestore:"documentNumber,omitempty"`
	Address        string `json:"address,omitempty" firestore:"address,omitempty"`
	City           string `json:"city,omitempty" firestore:"city,omitempty"`
	State          string `json:"state,omitempty" firestore:"state,omitempty"`
	PostalCode     string `json:"postalCode,omitempty" firestore:"postalCode,omitempty"`
}

// Attachment is a file carried inline on a submission record.
type Attachment struct {
	Name        string    `json:"name" firestore:"name"`
	ContentType string    `json:"contentType" firestore:"contentType"`
	Data        string    `json:"data" firestore:"data"` // base64-encoded bytes
	Sender      string    `json:"sender" firestore:"sender"`
	UploadedAt  time.Time `json:"uploadedAt" firestore:"uploadedAt"`
}

// Message is one entry in a submission's messages subcollection.
type Message struct {
	ID        string    `json:"id" firestore:"-"`
	Sender    string    `json:"sender" firestore:"sender"` // "admin" or "user"
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Submission is a single citizen-initiated request in one service domain.
// Each domain stores its submissions in its own collection; the document
// ID is auto-generated. Status and messages/attachments are mutated only
// by admin triage actions; submissions are never deleted.
type Submission struct {
	ID          string            `json:"id" firestore:"-"`
	Domain      string            `json:"domain" firestore:"-"`
	UserID      string            `json:"userId" firestore:"userId"`
	Protocol    string            `json:"protocol" firestore:"protocol"`
	Profile     *ProfileSnapshot  `json:"profile,omitempty" firestore:"profile,omitempty"`
	Fields      map[string]string `json:"fields" firestore:"fields"`
	Status      string            `json:"status" firestore:"status"`
	Attachments []Attachment      `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Anonymous reports whether the submission carries the anonymous sentinel
// instead of a real submitter identifier.
func (s *Submission) Anonymous() bool {
	return s.UserID == "" || s.UserID == AnonymousUserID
}
