package models

// CreateSubmissionRequest is the payload for filing a new submission.
// Anonymous is honored only on domains that allow it.
type CreateSubmissionRequest struct {
	Fields      map[string]string         `json:"fields" binding:"required"`
	Anonymous   bool                      `json:"anonymous,omitempty"`
	Attachments []CreateAttachmentRequest `json:"attachments,omitempty"`
}

// CreateAttachmentRequest carries one inline-encoded file.
type CreateAttachmentRequest struct {
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Data        string `json:"data" binding:"required"` // base64
}

// ChangeStatusRequest overwrites a submission's status field.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SendMessageRequest appends a message to a submission.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateProfileRequest is the payload for profile edits. Pointers
// distinguish "clear this field" from "leave it alone".
type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	Address        *string `json:"address,omitempty"`
	Number         *string `json:"number,omitempty"`
	Complement     *string `json:"complement,omitempty"`
	Neighborhood   *string `json:"neighborhood,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	PostalCode     *string `json:"postalCode,omitempty"`
	Sex            *string `json:"sex,omitempty"`
	MaritalStatus  *string `json:"maritalStatus,omitempty"`
	AvatarData     *string `json:"avatarData,omitempty"`
}

// AdminUpdateUserRequest extends profile edits with the role tag; only
// admins may change roles.
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Role *string `json:"role,omitempty"`
}

// SavePanicContactRequest configures the trusted panic-button contact.
type SavePanicContactRequest struct {
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email,omitempty"`
}

// TriggerPanicRequest carries the device's single-shot geolocation fix.
// Pointers distinguish an absent coordinate from a legitimate zero one
// (equator, prime meridian).
type TriggerPanicRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}
