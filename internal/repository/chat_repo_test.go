package repository

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
)

func newRedisChatLog(t *testing.T, ttl time.Duration) (ChatLogRepository, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisChatLogRepository(client, "test:chat", ttl), mini
}

func TestChatLogRepositoriesKeepOrderAndRemoveByHandle(t *testing.T) {
	redisRepo, _ := newRedisChatLog(t, time.Hour)
	repos := map[string]ChatLogRepository{
		"memory": NewMemoryChatLogRepository(time.Hour),
		"redis":  redisRepo,
	}

	for name, repo := range repos {
		repo := repo
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.Append(ctx, "s1", models.ChatMessage{Sender: models.SenderUser, Text: "stats"})
			require.NoError(t, err)
			typing, err := repo.Append(ctx, "s1", models.ChatMessage{Sender: models.SenderBot, Typing: true})
			require.NoError(t, err)
			require.NotEmpty(t, typing)
			_, err = repo.Append(ctx, "s1", models.ChatMessage{Sender: models.SenderBot, Text: "later"})
			require.NoError(t, err)

			removed, err := repo.Remove(ctx, "s1", typing)
			require.NoError(t, err)
			require.True(t, removed)

			removed, err = repo.Remove(ctx, "s1", typing)
			require.NoError(t, err)
			require.False(t, removed, "second removal should be a no-op")

			entries, err := repo.List(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, entries, 2)
			require.Equal(t, "stats", entries[0].Text)
			require.Equal(t, "later", entries[1].Text)
			require.False(t, entries[0].CreatedAt.IsZero())

			other, err := repo.List(ctx, "s2")
			require.NoError(t, err)
			require.Empty(t, other)
		})
	}
}

func TestRedisChatLogExpires(t *testing.T) {
	repo, mini := newRedisChatLog(t, time.Minute)
	ctx := context.Background()

	_, err := repo.Append(ctx, "s1", models.ChatMessage{Sender: models.SenderUser, Text: "hello"})
	require.NoError(t, err)
	require.True(t, mini.Exists("test:chat:s1"))

	mini.FastForward(2 * time.Minute)

	entries, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestMemoryChatLogExpires(t *testing.T) {
	repo := NewMemoryChatLogRepository(time.Minute).(*memoryChatLogRepository)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	handle, err := repo.Append(ctx, "s1", models.ChatMessage{Sender: models.SenderUser, Text: "hello"})
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	entries, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, entries)

	removed, err := repo.Remove(ctx, "s1", handle)
	require.NoError(t, err)
	require.False(t, removed)
}
