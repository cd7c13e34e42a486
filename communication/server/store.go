package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"wargame/communication"

	"github.com/redis/go-redis/v9"
)

var ErrUnexpectedTurn = errors.New("unexpected turn")

// appendRetries bounds the optimistic redis transaction when posts race.
const appendRetries = 10

// MoveStore keeps the moves of every game relayed by the broker, keyed by game name.
type MoveStore interface {
	// Append records msg as the latest move of the game. Turn 1 starts the game over; any
	// other turn must follow the latest move, else ErrUnexpectedTurn.
	Append(ctx context.Context, game string, msg communication.MoveMessage) error
	// Latest returns the most recent move, or nil if the game has none.
	Latest(ctx context.Context, game string) (*communication.MoveMessage, error)
	History(ctx context.Context, game string) ([]communication.MoveMessage, error)
	Reset(ctx context.Context, game string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]communication.MoveMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]communication.MoveMessage)}
}

func (s *MemoryStore) Append(_ context.Context, game string, msg communication.MoveMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves := s.games[game]
	if msg.Turn == 1 {
		moves = nil
	} else if err := checkTurn(moves, msg.Turn); err != nil {
		return err
	}
	s.games[game] = append(moves, msg)
	return nil
}

func checkTurn(moves []communication.MoveMessage, turn int) error {
	if len(moves) == 0 || moves[len(moves)-1].Turn+1 != turn {
		return fmt.Errorf("%w %d", ErrUnexpectedTurn, turn)
	}
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, game string) (*communication.MoveMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := s.games[game]
	if len(moves) == 0 {
		return nil, nil
	}
	latest := moves[len(moves)-1]
	return &latest, nil
}

func (s *MemoryStore) History(_ context.Context, game string) ([]communication.MoveMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]communication.MoveMessage(nil), s.games[game]...), nil
}

func (s *MemoryStore) Reset(_ context.Context, game string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, game)
	return nil
}

// RedisStore keeps each game's moves in a redis list so several broker processes can share
// them.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to the server at url, e.g. "redis://localhost:6379/0".
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func movesKey(game string) string { return "wargame:broker:moves:" + game }

func (s *RedisStore) Append(ctx context.Context, game string, msg communication.MoveMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal move: %w", err)
	}
	key := movesKey(game)

	for i := 0; i < appendRetries; i++ {
		err = s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			if msg.Turn != 1 {
				last, err := latest(ctx, tx, key)
				if err != nil {
					return err
				}
				var moves []communication.MoveMessage
				if last != nil {
					moves = append(moves, *last)
				}
				if err := checkTurn(moves, msg.Turn); err != nil {
					return err
				}
			}
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if msg.Turn == 1 {
					pipe.Del(ctx, key)
				}
				pipe.RPush(ctx, key, payload)
				return nil
			})
			return err
		}, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("append move: %w", err)
}

func (s *RedisStore) Latest(ctx context.Context, game string) (*communication.MoveMessage, error) {
	return latest(ctx, s.rdb, movesKey(game))
}

type lister interface {
	LIndex(ctx context.Context, key string, index int64) *redis.StringCmd
}

func latest(ctx context.Context, rdb lister, key string) (*communication.MoveMessage, error) {
	raw, err := rdb.LIndex(ctx, key, -1).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var msg communication.MoveMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode move: %w", err)
	}
	return &msg, nil
}

func (s *RedisStore) History(ctx context.Context, game string) ([]communication.MoveMessage, error) {
	raws, err := s.rdb.LRange(ctx, movesKey(game), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	moves := make([]communication.MoveMessage, 0, len(raws))
	for _, raw := range raws {
		var msg communication.MoveMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("decode move: %w", err)
		}
		moves = append(moves, msg)
	}
	return moves, nil
}

func (s *RedisStore) Reset(ctx context.Context, game string) error {
	return s.rdb.Del(ctx, movesKey(game)).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
