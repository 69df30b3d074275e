package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/znurfzh/ethic-sub000/internal/app/models"
	appRepos "github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/auth"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	storage := appRepos.NewMemStorage()

	require.NoError(t, CreateDefaultData(ctx, storage, zerolog.Nop(), Options{RandomSeed: 42}))

	users, err := storage.GetUsers(ctx)
	require.NoError(t, err)
	types := map[appModels.UserType]bool{}
	for _, u := range users {
		types[u.UserType] = true
		assert.Equal(t, DemoPassword, u.Password)
	}
	assert.Len(t, types, 4, "every user type is represented")

	topics, err := storage.GetTopics(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, topics)

	posts, err := storage.GetPosts(ctx, 100, 0)
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	for _, p := range posts {
		linked, err := storage.GetTopicsByPost(ctx, p.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(linked), 1)
		assert.LessOrEqual(t, len(linked), 3)

		author, err := storage.GetUser(ctx, p.AuthorID)
		require.NoError(t, err)
		assert.False(t, author.IsProfessional())
	}

	events, err := storage.GetEvents(ctx, 100, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, events)

	paths, err := storage.GetLearningPaths(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	withSteps := 0
	for _, p := range paths {
		steps, err := storage.GetLearningPathSteps(ctx, p.ID)
		require.NoError(t, err)
		if len(steps) > 0 {
			withSteps++
			for i, step := range steps {
				assert.Equal(t, i+1, step.Order)
			}
		}
	}
	assert.Equal(t, 2, withSteps, "only the first two paths get steps")

	notifications, err := storage.GetNotificationsByUser(ctx, users[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
}

func TestCreateDefaultData_Reproducible(t *testing.T) {
	ctx := context.Background()
	topicsOf := func(seed int64) [][]int64 {
		storage := appRepos.NewMemStorage()
		require.NoError(t, CreateDefaultData(ctx, storage, zerolog.Nop(), Options{RandomSeed: seed}))
		posts, err := storage.GetPosts(ctx, 100, 0)
		require.NoError(t, err)
		var out [][]int64
		for _, p := range posts {
			linked, err := storage.GetTopicsByPost(ctx, p.ID)
			require.NoError(t, err)
			ids := make([]int64, 0, len(linked))
			for _, tp := range linked {
				ids = append(ids, tp.ID)
			}
			out = append(out, ids)
		}
		return out
	}

	assert.Equal(t, topicsOf(7), topicsOf(7))
}

func TestCreateDefaultData_SkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	storage := appRepos.NewMemStorage()
	_, err := storage.CreateUser(ctx, &appModels.User{Username: "existing", Email: "e@x.io", UserType: appModels.UserTypeStudent})
	require.NoError(t, err)

	require.NoError(t, CreateDefaultData(ctx, storage, zerolog.Nop(), Options{}))

	users, err := storage.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateDefaultData_HashedPasswords(t *testing.T) {
	ctx := context.Background()
	storage := appRepos.NewMemStorage()
	require.NoError(t, CreateDefaultData(ctx, storage, zerolog.Nop(), Options{HashPasswords: true}))

	user, err := storage.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, DemoPassword, user.Password)
	assert.True(t, auth.CheckPassword(user.Password, DemoPassword))
}
