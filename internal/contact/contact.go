// Package contact accepts and stores contact form submissions.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Status messages shown next to the form.
const (
	SuccessMessage  = "Your message has been sent successfully! I will get back to you soon."
	RequiredMessage = "Please fill in all required fields."
	FailureMessage  = "There was an error sending your message. Please try again later."
)

// Store persists messages.
type Store interface {
	InsertMessage(m models.Message) error
	ListMessages(limit, offset int) ([]models.Message, int, error)
}

// Form is one submission as typed by the visitor.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate checks required fields and lengths.
func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Email, validation.Required, validation.Length(3, 254), is.EmailFormat),
		validation.Field(&f.Subject, validation.Length(0, 200)),
		validation.Field(&f.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// InvalidError reports per-field problems. It unwraps to apperr.ErrInvalid.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range []string{"name", "email", "subject", "message"} {
		if msg, ok := e.Fields[k]; ok {
			parts = append(parts, k+": "+msg)
		}
	}
	return "contact: " + strings.Join(parts, "; ")
}

func (e *InvalidError) Unwrap() error { return apperr.ErrInvalid }

// Service validates and stores submissions.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service backed by store.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Submit validates f and stores it. Validation failures return an
// *InvalidError.
func (s *Service) Submit(ctx context.Context, f Form) (models.Message, error) {
	if err := ctx.Err(); err != nil {
		return models.Message{}, err
	}
	f.normalize()
	if err := f.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for k, v := range verrs {
				fields[k] = v.Error()
			}
			return models.Message{}, &InvalidError{Fields: fields}
		}
		return models.Message{}, fmt.Errorf("contact: %v: %w", err, apperr.ErrInvalid)
	}

	m := models.Message{
		ID:        uuid.NewString(),
		Name:      f.Name,
		Email:     f.Email,
		Subject:   f.Subject,
		Body:      f.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.InsertMessage(m); err != nil {
		return models.Message{}, fmt.Errorf("contact: store: %w", err)
	}
	s.logger.Info("contact: message received",
		slog.String("id", m.ID),
		slog.Int("length", len(m.Body)))
	return m, nil
}

// List returns stored messages newest first and the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Message, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListMessages(limit, offset)
}

// StatusMessage returns the message shown to the visitor for err.
func StatusMessage(err error) string {
	var inv *InvalidError
	switch {
	case err == nil:
		return SuccessMessage
	case errors.As(err, &inv):
		for _, k := range []string{"name", "email", "message"} {
			if _, ok := inv.Fields[k]; ok && missing(inv.Fields[k]) {
				return RequiredMessage
			}
		}
		return inv.Error()
	default:
		return FailureMessage
	}
}

func missing(msg string) bool { return msg == validation.ErrRequired.Error() }
