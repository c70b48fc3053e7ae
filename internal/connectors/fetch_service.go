package connectors

import (
	"context"
	"fmt"

	"github.com/amritadottown/timetable-registry/internal"
)

type FetchService struct {
	connector MailConnector
	store     *MailStoreService
}

type FetchResult struct {
	Fetched  int
	New      int
	Messages []internal.StoredMailMessage
}

func NewFetchService(rawMailDir string, connector MailConnector) *FetchService {
	return &FetchService{
		connector: connector,
		store:     NewMailStoreService(rawMailDir),
	}
}

func (s *FetchService) Store() *MailStoreService {
	return s.store
}

func (s *FetchService) FetchAndStore(ctx context.Context, label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(ctx, label, max)
	if err != nil {
		return FetchResult{}, fmt.Errorf("fetch %s: %w", label, err)
	}

	res := FetchResult{Fetched: len(messages)}
	for _, msg := range messages {
		stored, err := s.store.Store(msg)
		if err != nil {
			return res, fmt.Errorf("store %s: %w", msg.MessageID, err)
		}
		if stored.IsNew {
			res.New++
		}
		res.Messages = append(res.Messages, stored)
	}
	return res, nil
}
