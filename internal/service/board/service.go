package board

import (
	"context"

	"github.com/zhouzirui/z-board/internal/model/message"
)

// Publisher receives every entry after it has been persisted.
type Publisher interface {
	Publish(entry message.Entry)
}

// Service ties board persistence to the live feed.
type Service struct {
	store     message.Store
	publisher Publisher
}

// NewService wires a store and an optional publisher.
func NewService(store message.Store, publisher Publisher) *Service {
	return &Service{store: store, publisher: publisher}
}

// List returns the full board as stored.
func (s *Service) List(ctx context.Context) (message.Board, error) {
	return s.store.Load(ctx)
}

// Entries returns the board sorted by timestamp.
func (s *Service) Entries(ctx context.Context) ([]message.Entry, error) {
	b, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return b.Entries(), nil
}

// Post persists a submission and announces it.
func (s *Service) Post(ctx context.Context, username, text string) (message.Entry, error) {
	entry, err := s.store.Save(ctx, username, text)
	if err != nil {
		return message.Entry{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish(entry)
	}
	return entry, nil
}
