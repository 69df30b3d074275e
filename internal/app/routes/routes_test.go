package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/bootstrap"
	"github.com/znurfzh/ethic-sub000/internal/config"
)

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	storage *repositories.MemStorage
}

type session struct {
	id    int64
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "test"

	storage := repositories.NewMemStorage()
	deps, err := bootstrap.BuildDependencies(cfg, storage, zerolog.Nop())
	require.NoError(t, err)

	return &testAPI{t: t, router: bootstrap.SetupRouter(cfg, deps, zerolog.Nop()), storage: storage}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) register(username, displayName string, userType models.UserType) session {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/register", "", gin.H{
		"username":    username,
		"password":    "secret123",
		"displayName": displayName,
		"email":       username + "@ethic.edu",
		"userType":    userType,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	decode(a.t, w, &resp)
	return session{id: resp.User.ID, token: resp.Token.AccessToken}
}

func (a *testAPI) createPost(s session, title string) models.Post {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/posts", s.token, gin.H{
		"title":    title,
		"content":  "Some content about " + title,
		"postType": "article",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Post
	decode(a.t, w, &post)
	return post
}

func (a *testAPI) notifications(s session) []models.Notification {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/notifications", s.token, nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	var out []models.Notification
	decode(a.t, w, &out)
	return out
}

// serve does not touch t, so goroutines may call it
func (a *testAPI) serve(method, path, token string, body []byte) int {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w.Code
}

// parallel fires n copies of fn at once and tallies the status codes
func parallel(n int, fn func(i int) int) map[int]int {
	codes := make(chan int, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			codes <- fn(i)
		}()
	}
	close(start)
	wg.Wait()
	close(codes)

	counts := make(map[int]int)
	for code := range codes {
		counts[code]++
	}
	return counts
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodGet, "/api/user", alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret123")

	w = api.do(http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/register", "", gin.H{
		"username": "alice", "password": "secret123", "displayName": "Other", "email": "other@ethic.edu",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/logout", alice.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreatePost_RequiresSession(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/api/posts", "", gin.H{"title": "x", "content": "y", "postType": "article"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePost_ValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodPost, "/api/posts", alice.token, gin.H{"content": "y", "postType": "blog"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.ErrorResponse
	decode(t, w, &body)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.NotNil(t, body.Error.Details)
}

func TestProfessionalCannotCreatePost(t *testing.T) {
	api := newTestAPI(t)
	pro := api.register("sam", "Sam", models.UserTypeProfessional)

	w := api.do(http.MethodPost, "/api/posts", pro.token, gin.H{
		"title": "Hiring", "content": "We are hiring", "postType": "article",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "professionals cannot create posts")

	posts, err := api.storage.GetPosts(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)

	w = api.do(http.MethodPost, "/api/topics", pro.token, gin.H{"name": "Jobs", "color": "#000"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/api/events", pro.token, gin.H{
		"title": "Meetup", "description": "Come along", "eventDate": "2030-01-01T18:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "anyone may create events")
}

func TestDuplicateLike(t *testing.T) {
	api := newTestAPI(t)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	post := api.createPost(bob, "EdTech trends")
	path := fmt.Sprintf("/api/posts/%d/likes", post.ID)

	w := api.do(http.MethodPost, path, alice.token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodPost, path, alice.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	likes, err := api.storage.GetLikesByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	notes := api.notifications(bob)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationTypeLike, notes[0].Type)

	w = api.do(http.MethodDelete, path, alice.token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodDelete, path, alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/api/posts/999/likes", alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarks(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	post := api.createPost(alice, "Saved for later")
	path := fmt.Sprintf("/api/posts/%d/bookmarks", post.ID)

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, path, alice.token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, path, alice.token, nil).Code)

	w := api.do(http.MethodGet, "/api/bookmarks", alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bookmarks []dto.BookmarkResponse
	decode(t, w, &bookmarks)
	require.Len(t, bookmarks, 1)
	require.NotNil(t, bookmarks[0].Post)
	assert.Equal(t, "Saved for later", bookmarks[0].Post.Title)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, path, alice.token, nil).Code)
}

func TestCommentNotifications(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)
	post := api.createPost(bob, "My first post")
	require.Equal(t, int64(1), post.ID)

	w := api.do(http.MethodPost, "/api/posts/1/comments", alice.token, gin.H{"content": "Great read!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment dto.CommentResponse
	decode(t, w, &comment)
	assert.Equal(t, int64(1), comment.PostID)
	assert.Equal(t, alice.id, comment.AuthorID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "Alice", comment.Author.DisplayName)

	notes := api.notifications(bob)
	require.Len(t, notes, 1)
	assert.Equal(t, bob.id, notes[0].UserID)
	assert.Equal(t, models.NotificationTypeComment, notes[0].Type)
	require.NotNil(t, notes[0].SourceID)
	assert.Equal(t, comment.ID, *notes[0].SourceID)
	require.NotNil(t, notes[0].SourceType)
	assert.Equal(t, "comment", *notes[0].SourceType)
	assert.Contains(t, notes[0].Content, "Alice")

	// commenting on one's own post notifies nobody
	w = api.do(http.MethodPost, "/api/posts/1/comments", bob.token, gin.H{"content": "Thanks!"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, api.notifications(bob), 1)

	w = api.do(http.MethodGet, "/api/posts/1/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []dto.CommentResponse
	decode(t, w, &comments)
	assert.Len(t, comments, 2)
}

func TestNotificationMarkRead(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)
	post := api.createPost(bob, "Hello")
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/likes", post.ID), alice.token, nil).Code)

	notes := api.notifications(bob)
	require.Len(t, notes, 1)
	path := fmt.Sprintf("/api/notifications/%d/read", notes[0].ID)

	// someone else's notification is left alone
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPut, path, alice.token, nil).Code)
	assert.False(t, api.notifications(bob)[0].Read)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPut, path, bob.token, nil).Code)
	assert.True(t, api.notifications(bob)[0].Read)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPut, "/api/notifications/999/read", bob.token, nil).Code)
}

func TestConnectionFlow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)

	w := api.do(http.MethodPost, "/api/connections", alice.token, gin.H{"receiverId": bob.id})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var conn models.Connection
	decode(t, w, &conn)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)
	assert.Len(t, api.notifications(bob), 1)

	w = api.do(http.MethodPost, "/api/connections", alice.token, gin.H{"receiverId": alice.id})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/api/connections/%d", conn.ID)
	w = api.do(http.MethodPut, path, bob.token, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for i := 0; i < 2; i++ {
		w = api.do(http.MethodPut, path, bob.token, gin.H{"status": "accepted"})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &conn)
		assert.Equal(t, models.ConnectionStatusAccepted, conn.Status)
	}
	assert.Len(t, api.notifications(alice), 2, "one notification per status update")

	w = api.do(http.MethodPut, "/api/connections/999", bob.token, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/connections", alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var conns []dto.ConnectionResponse
	decode(t, w, &conns)
	require.Len(t, conns, 1)
	require.NotNil(t, conns[0].User)
	assert.Equal(t, bob.id, conns[0].User.ID)
}

func TestUserProfiles(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)

	w := api.do(http.MethodPut, fmt.Sprintf("/api/users/%d", alice.id), alice.token, gin.H{"bio": "EdTech student"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EdTech student")
	assert.NotContains(t, w.Body.String(), "password")

	w = api.do(http.MethodPut, fmt.Sprintf("/api/users/%d", bob.id), alice.token, gin.H{"bio": "hacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []dto.UserProfile
	decode(t, w, &users)
	assert.Len(t, users, 2)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/users/999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/users/abc", "", nil).Code)
}

func TestSearch(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	for i := 0; i < 7; i++ {
		api.createPost(alice, fmt.Sprintf("EdTech note %d", i))
	}
	api.createPost(alice, "Unrelated")
	api.register("edtech_fan", "Fan", models.UserTypeStudent)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/topics", alice.token, gin.H{"name": "EdTech", "color": "#fff"}).Code)

	w := api.do(http.MethodGet, "/api/search?q=EDTECH", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res dto.SearchResponse
	decode(t, w, &res)
	assert.Len(t, res.Posts, 5)
	for _, p := range res.Posts {
		assert.Contains(t, p.Title, "EdTech")
	}
	assert.Len(t, res.Users, 1)
	assert.Len(t, res.Topics, 1)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/search", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/search?q=", "", nil).Code)
}

func TestPostsByTopicAndPaging(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodPost, "/api/topics", alice.token, gin.H{"name": "AI", "color": "#f00"})
	require.Equal(t, http.StatusCreated, w.Code)
	var topic models.Topic
	decode(t, w, &topic)

	w = api.do(http.MethodPost, "/api/posts", alice.token, gin.H{
		"title": "Tagged", "content": "c", "postType": "discussion", "topics": []int64{topic.ID},
		"resources": []gin.H{{"title": "Slides", "type": "link", "url": "https://example.org/slides"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tagged models.Post
	decode(t, w, &tagged)
	api.createPost(alice, "Untagged")

	w = api.do(http.MethodGet, fmt.Sprintf("/api/posts?topicId=%d", topic.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []models.Post
	decode(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, tagged.ID, posts[0].ID)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/topics/%d/posts", topic.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &posts)
	assert.Len(t, posts, 1)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/posts/%d/resources", tagged.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Slides")

	w = api.do(http.MethodGet, "/api/posts?limit=1&offset=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "Untagged", posts[0].Title, "newest first")

	w = api.do(http.MethodPost, "/api/posts", alice.token, gin.H{
		"title": "Bad topic", "content": "c", "postType": "article", "topics": []int64{999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLearningPathProgressUpsert(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)

	w := api.do(http.MethodPost, "/api/learning-paths", alice.token, gin.H{
		"title": "Intro", "description": "Basics", "difficulty": "beginner",
		"steps": []gin.H{
			{"title": "Read", "description": "Read this", "externalUrl": "https://example.org/read"},
			{"title": "Practice", "description": "Do this"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var path dto.LearningPathDetailResponse
	decode(t, w, &path)
	require.Len(t, path.Steps, 2)
	assert.Equal(t, 1, path.Steps[0].Order)
	assert.Equal(t, 2, path.Steps[1].Order)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/learning-paths/%d/steps", path.ID), bob.token, gin.H{"title": "Mine", "description": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/learning-paths/%d/steps", path.ID), alice.token, gin.H{
		"title": "Both", "description": "x", "postId": 1, "externalUrl": "https://example.org",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/learning-paths/%d/steps", path.ID), alice.token, gin.H{"title": "Reflect", "description": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	var step models.LearningPathStep
	decode(t, w, &step)
	assert.Equal(t, 3, step.Order)

	stepID := path.Steps[0].ID
	progressPath := fmt.Sprintf("/api/users/%d/learning-progress/%d/steps/%d", alice.id, path.ID, stepID)

	w = api.do(http.MethodPost, progressPath, alice.token, gin.H{"completed": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var progress models.UserLearningProgress
	decode(t, w, &progress)
	assert.True(t, progress.Completed)
	assert.NotNil(t, progress.CompletedAt)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/users/%d/learning-progress/%d", alice.id, path.ID), alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary dto.LearningProgressResponse
	decode(t, w, &summary)
	assert.Equal(t, dto.ProgressStats{CompletedSteps: 1, TotalSteps: 3, PercentComplete: 33}, summary.Stats)

	w = api.do(http.MethodPost, progressPath, alice.token, gin.H{"completed": false})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &progress)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.CompletedAt)

	rows, err := api.storage.GetUserLearningProgress(context.Background(), alice.id, path.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)
	assert.Nil(t, rows[0].CompletedAt)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/users/%d/learning-progress/%d", alice.id, path.ID), bob.token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/users/%d/learning-progress/%d/steps/999", alice.id, path.ID), alice.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/learning-paths/%d", path.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"creator"`)
	assert.Contains(t, w.Body.String(), `"externalUrl":"https://example.org/read"`)
}

func TestProgressStatsWithoutSteps(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodPost, "/api/learning-paths", alice.token, gin.H{
		"title": "Empty", "description": "Nothing yet", "difficulty": "beginner",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var path dto.LearningPathDetailResponse
	decode(t, w, &path)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/users/%d/learning-progress/%d", alice.id, path.ID), alice.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary dto.LearningProgressResponse
	decode(t, w, &summary)
	assert.Equal(t, dto.ProgressStats{}, summary.Stats)
}

func TestEvents(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	for _, date := range []string{"2030-03-01T10:00:00Z", "2030-01-01T10:00:00Z"} {
		w := api.do(http.MethodPost, "/api/events", alice.token, gin.H{
			"title": "Event " + date, "description": "d", "eventDate": date,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := api.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []models.Event
	decode(t, w, &events)
	require.Len(t, events, 2)
	assert.True(t, events[0].EventDate.Before(events[1].EventDate), "soonest first")
	assert.Equal(t, dto.DefaultEventColor, events[0].Color)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/events/999", "", nil).Code)
}

func TestParallelLikesAndBookmarks(t *testing.T) {
	const n = 50
	api := newTestAPI(t)
	bob := api.register("bob", "Bob", models.UserTypeAlumni)
	alice := api.register("alice", "Alice", models.UserTypeStudent)
	post := api.createPost(bob, "Popular post")

	likePath := fmt.Sprintf("/api/posts/%d/likes", post.ID)
	codes := parallel(n, func(int) int { return api.serve(http.MethodPost, likePath, alice.token, nil) })
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusBadRequest: n - 1}, codes)

	likes, err := api.storage.GetLikesByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Len(t, api.notifications(bob), 1)

	bookmarkPath := fmt.Sprintf("/api/posts/%d/bookmarks", post.ID)
	codes = parallel(n, func(int) int { return api.serve(http.MethodPost, bookmarkPath, alice.token, nil) })
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusBadRequest: n - 1}, codes)

	bookmarks, err := api.storage.GetBookmarksByUser(context.Background(), alice.id)
	require.NoError(t, err)
	assert.Len(t, bookmarks, 1)
}

func TestParallelProgressUpsert(t *testing.T) {
	const n = 50
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodPost, "/api/learning-paths", alice.token, gin.H{
		"title": "Intro", "description": "Basics", "difficulty": "beginner",
		"steps": []gin.H{{"title": "Read", "description": "Read this"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var path dto.LearningPathDetailResponse
	decode(t, w, &path)
	require.Len(t, path.Steps, 1)

	progressPath := fmt.Sprintf("/api/users/%d/learning-progress/%d/steps/%d", alice.id, path.ID, path.Steps[0].ID)
	body := []byte(`{"completed":true}`)
	codes := parallel(n, func(int) int { return api.serve(http.MethodPost, progressPath, alice.token, body) })
	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusOK: n - 1}, codes)

	rows, err := api.storage.GetUserLearningProgress(context.Background(), alice.id, path.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
}

func TestProgressUpsert_EmptyChunkedBody(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	w := api.do(http.MethodPost, "/api/learning-paths", alice.token, gin.H{
		"title": "Intro", "description": "Basics", "difficulty": "beginner",
		"steps": []gin.H{{"title": "Read", "description": "Read this"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var path dto.LearningPathDetailResponse
	decode(t, w, &path)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/users/%d/learning-progress/%d/steps/%d", alice.id, path.ID, path.Steps[0].ID), nil)
	req.Body = io.NopCloser(strings.NewReader(""))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+alice.token)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var progress models.UserLearningProgress
	decode(t, w, &progress)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.CompletedAt)
}

func TestParallelEmailClaims(t *testing.T) {
	const n = 20
	const shared = "shared@ethic.edu"
	api := newTestAPI(t)
	alice := api.register("alice", "Alice", models.UserTypeStudent)

	update, err := json.Marshal(gin.H{"email": shared})
	require.NoError(t, err)
	registrations := make([][]byte, n)
	for i := range registrations {
		registrations[i], err = json.Marshal(gin.H{
			"username":    fmt.Sprintf("racer%d", i),
			"password":    "secret123",
			"displayName": "Racer",
			"email":       shared,
			"userType":    models.UserTypeStudent,
		})
		require.NoError(t, err)
	}

	codes := parallel(n, func(i int) int {
		if i == 0 {
			return api.serve(http.MethodPut, fmt.Sprintf("/api/users/%d", alice.id), alice.token, update)
		}
		return api.serve(http.MethodPost, "/api/register", "", registrations[i])
	})
	assert.Equal(t, 1, codes[http.StatusOK]+codes[http.StatusCreated], codes)

	users, err := api.storage.GetUsers(context.Background())
	require.NoError(t, err)
	owners := 0
	for _, u := range users {
		if u.Email == shared {
			owners++
		}
	}
	assert.Equal(t, 1, owners)
}
