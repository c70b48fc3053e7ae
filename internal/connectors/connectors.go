package connectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/config"
	gmailconnector "github.com/amritadottown/timetable-registry/internal/connectors/gmail"
	imapconnector "github.com/amritadottown/timetable-registry/internal/connectors/imap"
)

type MailConnector interface {
	FetchInbox(ctx context.Context, label string, max int) ([]internal.FetchedMailMessage, error)
}

// ForProvider builds the connector named by provider ("gmail" or "imap").
func ForProvider(cfg config.Config, provider string) (MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", provider)
	}
}
