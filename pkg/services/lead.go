package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/questline-studio/agency-site/pkg/clients/telegram"
	"github.com/questline-studio/agency-site/pkg/config"
	"github.com/questline-studio/agency-site/pkg/models"
	"github.com/questline-studio/agency-site/pkg/utils"
)

var (
	ErrInvalidLead    = errors.New("name and email are required")
	ErrNotConfigured  = errors.New("lead notifications are not configured")
	ErrDeliveryFailed = errors.New("failed to deliver lead notification")
)

const (
	leadMessageTitle   = "🎮 New lead from the website"
	companyPlaceholder = "Not provided"
	sourcePlaceholder  = "Website"
	leadTimeLayout     = "02.01.2006 15:04:05"
)

// LeadNotificationService defines the interface for forwarding contact form submissions
type LeadNotificationService interface {
	NotifyLead(ctx context.Context, data models.LeadFormData) error
}

type leadNotificationServiceImpl struct {
	telegramClient telegram.Client
	config         config.TelegramConfig
	validate       *validator.Validate
	location       *time.Location
	now            func() time.Time
}

// NewLeadNotificationService creates a new lead notification service.
// Missing secrets are reported on every call rather than at construction.
func NewLeadNotificationService(telegramClient telegram.Client, cfg config.TelegramConfig) LeadNotificationService {
	return &leadNotificationServiceImpl{
		telegramClient: telegramClient,
		config:         cfg,
		validate:       validator.New(),
		location:       LeadLocation(),
		now:            time.Now,
	}
}

// LeadLocation returns the civil time zone lead timestamps are rendered in
func LeadLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Belgrade")
	if err != nil {
		return time.FixedZone("UTC+2", 2*60*60)
	}
	return loc
}

// NotifyLead validates the submission and forwards it to the configured chat.
// Every valid call sends exactly one message; duplicates are not detected.
func (s *leadNotificationServiceImpl) NotifyLead(ctx context.Context, data models.LeadFormData) error {
	// A misconfigured deployment fails every submission, valid or not.
	if err := s.config.Validate(); err != nil {
		logrus.WithError(err).Error("Lead notifier is missing configuration")
		return fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	if err := s.validate.Struct(data); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %s", ErrInvalidLead, failedFields(validationErrors))
		}
		return fmt.Errorf("%w: %v", ErrInvalidLead, err)
	}

	fingerprint := utils.Fingerprint(data.Email)

	text := FormatLeadMessage(data, s.now().In(s.location))

	err := s.telegramClient.SendMessage(ctx, s.config.BotToken, s.config.ChatID, text, telegram.ParseModeHTML)
	if err != nil {
		fields := logrus.Fields{
			"lead":  fingerprint,
			"error": err.Error(),
		}
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			fields["status_code"] = apiErr.StatusCode
			fields["response_body"] = apiErr.Body
		}
		logrus.WithFields(fields).Error("Error sending lead notification")
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	logrus.WithField("lead", fingerprint).Info("Lead notification sent")
	return nil
}

// FormatLeadMessage renders the notification text for a lead received at sentAt
func FormatLeadMessage(data models.LeadFormData, sentAt time.Time) string {
	company := data.Company
	if company == "" {
		company = companyPlaceholder
	}
	source := data.Source
	if source == "" {
		source = sourcePlaceholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", leadMessageTitle)
	fmt.Fprintf(&b, "<b>Name:</b> %s\n", html.EscapeString(data.Name))
	fmt.Fprintf(&b, "<b>Company:</b> %s\n", html.EscapeString(company))
	fmt.Fprintf(&b, "<b>Email:</b> %s\n", html.EscapeString(data.Email))
	fmt.Fprintf(&b, "<b>Source:</b> %s\n", html.EscapeString(source))
	fmt.Fprintf(&b, "<b>Time:</b> %s", sentAt.Format(leadTimeLayout))
	return b.String()
}

func failedFields(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, strings.ToLower(e.Field()))
	}
	return "missing " + strings.Join(fields, ", ")
}
