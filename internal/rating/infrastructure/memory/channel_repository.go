package memory

import (
	"context"
	"sync"

	rating "freightops/internal/rating/domain"
)

// ChannelRepository is an in-memory channel catalog.
type ChannelRepository struct {
	mu       sync.RWMutex
	channels map[string]rating.Channel
	order    []string
}

// NewChannelRepository constructs an empty catalog.
func NewChannelRepository() *ChannelRepository {
	return &ChannelRepository{channels: make(map[string]rating.Channel)}
}

// Save stores or replaces a channel after validating its rate table.
func (r *ChannelRepository) Save(ctx context.Context, channel rating.Channel) error {
	_ = ctx
	for _, rule := range channel.Rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.channels[channel.ID]; !exists {
		r.order = append(r.order, channel.ID)
	}
	r.channels[channel.ID] = channel
	return nil
}

// ListChannels returns every channel in insertion order.
func (r *ChannelRepository) ListChannels(ctx context.Context) ([]rating.Channel, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]rating.Channel, 0, len(r.order))
	for _, id := range r.order {
		channels = append(channels, r.channels[id])
	}
	return channels, nil
}
