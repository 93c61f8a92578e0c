package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/questline-studio/agency-site/pkg/clients/steam"
)

var (
	ErrInvalidAppID = errors.New("appid must be a numeric Steam app id")
	ErrAppNotFound  = errors.New("app not found")
	ErrUpstream     = errors.New("steam store request failed")
)

var appIDPattern = regexp.MustCompile(`^\d+$`)

// AppDetailsService defines the interface for looking up Steam app metadata
type AppDetailsService interface {
	AppDetails(ctx context.Context, rawAppID string) (json.RawMessage, error)
}

type appDetailsServiceImpl struct {
	steamClient steam.Client
}

// NewAppDetailsService creates a new app details service
func NewAppDetailsService(steamClient steam.Client) AppDetailsService {
	return &appDetailsServiceImpl{
		steamClient: steamClient,
	}
}

// NormalizeAppID trims the raw identifier and reports whether it is all decimal digits
func NormalizeAppID(raw string) (string, bool) {
	appID := strings.TrimSpace(raw)
	return appID, appIDPattern.MatchString(appID)
}

// AppDetails returns the unwrapped data object for the given app id
func (s *appDetailsServiceImpl) AppDetails(ctx context.Context, rawAppID string) (json.RawMessage, error) {
	appID, ok := NormalizeAppID(rawAppID)
	if !ok {
		return nil, ErrInvalidAppID
	}

	envelope, err := s.steamClient.AppDetails(ctx, appID)
	if err != nil {
		var statusErr *steam.StatusError
		if errors.As(err, &statusErr) {
			logrus.WithFields(logrus.Fields{
				"appid":       appID,
				"status_code": statusErr.StatusCode,
			}).Warn("Steam store returned a non-success status")
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil, err
	}

	entry, found := envelope[appID]
	if !found || !entry.Success || !entry.HasData() {
		return nil, fmt.Errorf("%w: %s", ErrAppNotFound, appID)
	}

	return entry.Data, nil
}
