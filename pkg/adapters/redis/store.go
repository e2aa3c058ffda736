// Package redis implements ports.WorkshopStore on Redis, for deployments
// where workshops are shared between hosts or should expire automatically.
package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/aretw0/bigpicture/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.WorkshopStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored workshops.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored workshops.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "bigpicture:workshop:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the snapshot to Redis and registers it in the ZSET index.
func (s *Store) Save(ctx context.Context, w *domain.Workshop) error {
	w.Metadata.UpdatedAt = domain.Timestamp()

	data, err := domain.Encode(w)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(w.Metadata.ID), data, s.ttl)

	// Index score = expiry time, so List can prune lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively "never"
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: w.Metadata.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a snapshot from Redis, migrating legacy schema shapes.
func (s *Store) Load(ctx context.Context, id string) (*domain.Workshop, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return domain.Decode([]byte(val))
}

// Delete removes the snapshot and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns summaries of stored workshops, most recently updated first.
// Expired index entries are pruned lazily before listing.
func (s *Store) List(ctx context.Context) ([]ports.Summary, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired workshops: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	summaries := []ports.Summary{}
	for _, id := range ids {
		w, err := s.Load(ctx, id)
		if err != nil {
			// Key expired between prune and load; skip.
			continue
		}
		summaries = append(summaries, ports.Summary{
			ID:           w.Metadata.ID,
			Name:         w.Metadata.Name,
			Domain:       w.Metadata.Domain,
			CreatedAt:    w.Metadata.CreatedAt,
			UpdatedAt:    w.Metadata.UpdatedAt,
			ElementCount: len(w.Elements),
			ContextCount: len(w.BoundedContexts),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt > summaries[j].UpdatedAt
	})
	return summaries, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
