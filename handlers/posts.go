package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"blog-service/config"
	"blog-service/models"
	"blog-service/store"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	feedCacheKey = "posts:feed"
	feedCacheTTL = 5 * time.Minute
)

// PostHandler handles the shared post feed
type PostHandler struct {
	users store.UserStore
	posts store.PostStore
	cache cache.Cache
	cfg   *config.Config
}

// NewPostHandler creates a new post handler
func NewPostHandler(users store.UserStore, posts store.PostStore, c cache.Cache, cfg *config.Config) *PostHandler {
	return &PostHandler{
		users: users,
		posts: posts,
		cache: c,
		cfg:   cfg,
	}
}

// GetPosts handles GET /posts - the public feed, newest first
func (h *PostHandler) GetPosts(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Try cache first; the value may come back as bytes or string
	// depending on the cache backend
	if cached, err := h.cache.Get(feedCacheKey); err == nil {
		switch v := cached.(type) {
		case []byte:
			logRequest(r, "debug", "Serving feed from cache")
			w.Write(v)
			return
		case string:
			logRequest(r, "debug", "Serving feed from cache")
			w.Write([]byte(v))
			return
		}
	}

	posts, err := h.posts.List(ctx)
	if err != nil {
		logRequest(r, "error", "Failed to query posts", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Failed to fetch posts"))
		return
	}

	response, _ := json.Marshal(map[string][]models.Post{"posts": posts})
	h.cache.Set(feedCacheKey, response, feedCacheTTL)

	logRequest(r, "info", "Posts retrieved successfully", zap.Int("count", len(posts)))

	w.Write(response)
}

// CreatePost handles POST /post - authenticated post creation
func (h *PostHandler) CreatePost(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	claims, ok := requireSession(w, r, h.cfg.JWTSecret)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(r, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Title and content are required"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logRequest(r, "error", "Invalid user id in session claims", zap.String("user_id", claims.UserID))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Unauthorized"))
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		logRequest(r, "info", "Post author not found", zap.String("user_id", claims.UserID))
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errs.NewNotFoundError("User not found"))
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to resolve post author", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred while adding the post"))
		return
	}

	post := &models.Post{
		Title:   req.Title,
		Content: req.Content,
		Author: models.Author{
			// Snapshot of the author as of this instant; later profile
			// changes do not rewrite history
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			EmailID:   user.EmailID,
		},
		CreatedAt: time.Now(),
	}

	postID, err := h.posts.Insert(ctx, post)
	if err != nil {
		logRequest(r, "error", "Failed to create post", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred while adding the post"))
		return
	}

	// The post record above is authoritative; the embedded per-user
	// summary is a best-effort cache. If this append fails the post
	// still stands, so log and keep going.
	summary := models.PostSummary{
		ID:        postID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
	if err := h.users.AppendPostSummary(ctx, user.ID, summary); err != nil {
		logRequest(r, "error", "Failed to append post summary", zap.Error(err),
			zap.String("post_id", postID.Hex()))
	}

	h.cache.Delete(feedCacheKey)

	logRequest(r, "info", "Post created successfully",
		zap.String("post_id", postID.Hex()), zap.String("user_id", user.ID.Hex()))

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Post added successfully",
		"post":    post,
	})
}
