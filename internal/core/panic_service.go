package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
)

// PanicAlert is the composed panic payload handed back to the device,
// which opens the SMS deep link in the platform composer.
type PanicAlert struct {
	ContactPhone string `json:"contactPhone"`
	Message      string `json:"message"`
	MapsURL      string `json:"mapsUrl"`
	SMSLink      string `json:"smsLink"`
}

// panicService implements the PanicService interface.
type panicService struct {
	contactRepo db.PanicContactRepository
	helpMessage string
}

// NewPanicService creates a new PanicService instance. helpMessage is the
// fixed text prepended to the map URL.
func NewPanicService(contactRepo db.PanicContactRepository, helpMessage string) PanicService {
	return &panicService{
		contactRepo: contactRepo,
		helpMessage: helpMessage,
	}
}

// GetContact returns the caller's configured trusted contact.
func (s *panicService) GetContact(ctx context.Context, userID string) (*models.PanicContact, error) {
	contact, err := s.contactRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPanicContactNotConfigured
		}
		return nil, err
	}
	return contact, nil
}

// SaveContact creates or overwrites the caller's trusted contact.
func (s *panicService) SaveContact(ctx context.Context, userID string, req models.SavePanicContactRequest) (*models.PanicContact, error) {
	contact := &models.PanicContact{
		UserID:    userID,
		Phone:     req.Phone,
		Email:     req.Email,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.contactRepo.Set(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Trigger composes the panic SMS deep link from a device geolocation fix.
// Without a configured contact with a non-empty phone the trigger aborts
// before composing anything; no retry, no fallback channel.
func (s *panicService) Trigger(ctx context.Context, userID string, latitude, longitude float64) (*PanicAlert, error) {
	contact, err := s.contactRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPanicContactNotConfigured
		}
		return nil, err
	}
	if contact.Phone == "" {
		return nil, ErrPanicContactNotConfigured
	}

	mapsURL := fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64),
	)
	message := s.helpMessage + " " + mapsURL

	return &PanicAlert{
		ContactPhone: contact.Phone,
		Message:      message,
		MapsURL:      mapsURL,
		SMSLink:      "sms:" + contact.Phone + "?body=" + url.QueryEscape(message),
	}, nil
}
