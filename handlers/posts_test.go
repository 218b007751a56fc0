package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-service/handlers"
	"blog-service/models"
	"blog-service/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedFixture() []models.Post {
	author := models.Author{
		ID:        primitive.NewObjectID(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		EmailID:   "ada@example.com",
	}
	newest := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     "Second",
		Content:   "Newest post",
		Author:    author,
		CreatedAt: time.Now(),
	}
	oldest := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     "First",
		Content:   "Oldest post",
		Author:    author,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	return []models.Post{newest, oldest}
}

func TestGetPostsNewestFirst(t *testing.T) {
	posts := new(MockPostStore)
	posts.On("List", mock.Anything).Return(feedFixture(), nil).Once()

	h := handlers.NewPostHandler(new(MockUserStore), posts, newMemoryCache(t), testConfig())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/posts", nil)

	h.GetPosts(context.Background(), w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	require.Equal(t, "Second", resp.Posts[0].Title)
	require.Equal(t, "Ada", resp.Posts[0].Author.FirstName)
}

func TestGetPostsServedFromCache(t *testing.T) {
	posts := new(MockPostStore)
	posts.On("List", mock.Anything).Return(feedFixture(), nil).Once()

	h := handlers.NewPostHandler(new(MockUserStore), posts, newMemoryCache(t), testConfig())

	w1 := httptest.NewRecorder()
	h.GetPosts(context.Background(), w1, httptest.NewRequest(http.MethodGet, "/posts", nil))
	w2 := httptest.NewRecorder()
	h.GetPosts(context.Background(), w2, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, w1.Body.String(), w2.Body.String())
	// Second request never hit the store
	posts.AssertNumberOfCalls(t, "List", 1)
}

func TestGetPostsStoreFailure(t *testing.T) {
	posts := new(MockPostStore)
	posts.On("List", mock.Anything).Return(nil, context.DeadlineExceeded).Once()

	h := handlers.NewPostHandler(new(MockUserStore), posts, newMemoryCache(t), testConfig())
	w := httptest.NewRecorder()

	h.GetPosts(context.Background(), w, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreatePostSuccess(t *testing.T) {
	user := adaUser()
	users := new(MockUserStore)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	users.On("AppendPostSummary", mock.Anything, user.ID, mock.AnythingOfType("models.PostSummary")).
		Return(nil).Once()

	posts := new(MockPostStore)
	postID := primitive.NewObjectID()
	posts.On("Insert", mock.Anything, mock.AnythingOfType("*models.Post")).Return(postID, nil).Once()

	cfg := testConfig()
	h := handlers.NewPostHandler(users, posts, newMemoryCache(t), cfg)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "Hi", "content": "First post"}`))
	r.AddCookie(sessionCookie(t, user.ID.Hex(), user.EmailID, cfg.JWTSecret))

	h.CreatePost(context.Background(), w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string      `json:"message"`
		Post    models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Hi", resp.Post.Title)
	require.Equal(t, "Ada", resp.Post.Author.FirstName)
	require.Equal(t, user.ID, resp.Post.Author.ID)

	// The embedded summary mirrors the created post
	summary := users.Calls[1].Arguments.Get(2).(models.PostSummary)
	require.Equal(t, "Hi", summary.Title)
	require.Equal(t, "First post", summary.Content)

	users.AssertExpectations(t)
	posts.AssertExpectations(t)
}

func TestCreatePostWithoutSession(t *testing.T) {
	users := new(MockUserStore)
	posts := new(MockPostStore)

	h := handlers.NewPostHandler(users, posts, newMemoryCache(t), testConfig())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "Hi", "content": "First post"}`))

	h.CreatePost(context.Background(), w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	// Fails closed before touching any store
	posts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreatePostBlankTitle(t *testing.T) {
	user := adaUser()
	posts := new(MockPostStore)

	cfg := testConfig()
	h := handlers.NewPostHandler(new(MockUserStore), posts, newMemoryCache(t), cfg)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "   ", "content": "First post"}`))
	r.AddCookie(sessionCookie(t, user.ID.Hex(), user.EmailID, cfg.JWTSecret))

	h.CreatePost(context.Background(), w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	posts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreatePostAuthorVanished(t *testing.T) {
	userID := primitive.NewObjectID()
	users := new(MockUserStore)
	users.On("FindByID", mock.Anything, userID).Return(nil, store.ErrNotFound).Once()

	posts := new(MockPostStore)
	cfg := testConfig()
	h := handlers.NewPostHandler(users, posts, newMemoryCache(t), cfg)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "Hi", "content": "First post"}`))
	r.AddCookie(sessionCookie(t, userID.Hex(), "ghost@example.com", cfg.JWTSecret))

	h.CreatePost(context.Background(), w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	posts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreatePostSummaryAppendFailureStillCreated(t *testing.T) {
	// The post record is authoritative; a failed summary append must not
	// fail the creation
	user := adaUser()
	users := new(MockUserStore)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	users.On("AppendPostSummary", mock.Anything, user.ID, mock.AnythingOfType("models.PostSummary")).
		Return(context.DeadlineExceeded).Once()

	posts := new(MockPostStore)
	posts.On("Insert", mock.Anything, mock.AnythingOfType("*models.Post")).
		Return(primitive.NewObjectID(), nil).Once()

	cfg := testConfig()
	h := handlers.NewPostHandler(users, posts, newMemoryCache(t), cfg)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "Hi", "content": "First post"}`))
	r.AddCookie(sessionCookie(t, user.ID.Hex(), user.EmailID, cfg.JWTSecret))

	h.CreatePost(context.Background(), w, r)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreatePostInvalidatesFeedCache(t *testing.T) {
	user := adaUser()
	users := new(MockUserStore)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()
	users.On("AppendPostSummary", mock.Anything, user.ID, mock.AnythingOfType("models.PostSummary")).
		Return(nil).Once()

	posts := new(MockPostStore)
	posts.On("List", mock.Anything).Return(feedFixture(), nil).Twice()
	posts.On("Insert", mock.Anything, mock.AnythingOfType("*models.Post")).
		Return(primitive.NewObjectID(), nil).Once()

	cfg := testConfig()
	h := handlers.NewPostHandler(users, posts, newMemoryCache(t), cfg)

	// Warm the cache, create a post, then list again: the second list
	// must go back to the store
	h.GetPosts(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title": "Hi", "content": "First post"}`))
	r.AddCookie(sessionCookie(t, user.ID.Hex(), user.EmailID, cfg.JWTSecret))
	h.CreatePost(context.Background(), w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	h.GetPosts(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	posts.AssertNumberOfCalls(t, "List", 2)
}
