package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
)

// ChatLogRepository keeps the ordered chat transcript of each dashboard session.
// Transcripts are ephemeral and expire after a period of inactivity.
type ChatLogRepository interface {
	// Append adds message to the end of the transcript and returns its handle.
	Append(ctx context.Context, session string, message models.ChatMessage) (string, error)
	List(ctx context.Context, session string) ([]models.ChatMessage, error)
	// Remove deletes the entry with the given handle. It reports false when the
	// entry was already gone.
	Remove(ctx context.Context, session, handle string) (bool, error)
}

func prepareMessage(message models.ChatMessage, now time.Time) models.ChatMessage {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = now.UTC()
	}
	return message
}

type memoryChatLog struct {
	entries   []models.ChatMessage
	expiresAt time.Time
}

type memoryChatLogRepository struct {
	mu   sync.Mutex
	logs map[string]*memoryChatLog
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryChatLogRepository keeps transcripts in process memory.
func NewMemoryChatLogRepository(ttl time.Duration) ChatLogRepository {
	return &memoryChatLogRepository{
		logs: make(map[string]*memoryChatLog),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *memoryChatLogRepository) Append(ctx context.Context, session string, message models.ChatMessage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	log := r.live(session, now)
	if log == nil {
		log = &memoryChatLog{}
		r.logs[session] = log
	}

	message = prepareMessage(message, now)
	log.entries = append(log.entries, message)
	if r.ttl > 0 {
		log.expiresAt = now.Add(r.ttl)
	}
	return message.ID, nil
}

func (r *memoryChatLogRepository) List(ctx context.Context, session string) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.live(session, r.now())
	if log == nil {
		return []models.ChatMessage{}, nil
	}
	entries := make([]models.ChatMessage, len(log.entries))
	copy(entries, log.entries)
	return entries, nil
}

func (r *memoryChatLogRepository) Remove(ctx context.Context, session, handle string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.live(session, r.now())
	if log == nil {
		return false, nil
	}
	for i, entry := range log.entries {
		if entry.ID == handle {
			log.entries = append(log.entries[:i], log.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// live returns the session's transcript, dropping it when expired. Callers hold mu.
func (r *memoryChatLogRepository) live(session string, now time.Time) *memoryChatLog {
	log, ok := r.logs[session]
	if !ok {
		return nil
	}
	if !log.expiresAt.IsZero() && now.After(log.expiresAt) {
		delete(r.logs, session)
		return nil
	}
	return log
}

type redisChatLogRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisChatLogRepository stores each transcript as a redis list under
// "<prefix>:<session>".
func NewRedisChatLogRepository(client *redis.Client, prefix string, ttl time.Duration) ChatLogRepository {
	if prefix == "" {
		prefix = "hoidash:chat"
	}
	return &redisChatLogRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *redisChatLogRepository) key(session string) string {
	return fmt.Sprintf("%s:%s", r.prefix, session)
}

func (r *redisChatLogRepository) Append(ctx context.Context, session string, message models.ChatMessage) (string, error) {
	message = prepareMessage(message, r.now())
	payload, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("encode chat entry: %w", err)
	}

	key := r.key(session)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("append chat entry: %w", err)
	}
	return message.ID, nil
}

func (r *redisChatLogRepository) List(ctx context.Context, session string) ([]models.ChatMessage, error) {
	raw, err := r.client.LRange(ctx, r.key(session), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list chat entries: %w", err)
	}

	entries := make([]models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var entry models.ChatMessage
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *redisChatLogRepository) Remove(ctx context.Context, session, handle string) (bool, error) {
	key := r.key(session)
	raw, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return false, fmt.Errorf("list chat entries: %w", err)
	}

	for _, item := range raw {
		var entry models.ChatMessage
		if err := json.Unmarshal([]byte(item), &entry); err != nil || entry.ID != handle {
			continue
		}
		removed, err := r.client.LRem(ctx, key, 1, item).Result()
		if err != nil {
			return false, fmt.Errorf("remove chat entry: %w", err)
		}
		return removed > 0, nil
	}
	return false, nil
}
