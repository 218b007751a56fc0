package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blog-service/auth"
	"blog-service/config"
	"blog-service/models"
	"blog-service/store"

	"github.com/umakantv/go-utils/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login, logout and session checks
type AuthHandler struct {
	users store.UserStore
	cfg   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		cfg:   cfg,
	}
}

// setSessionCookie delivers the session token as an HTTP-only cookie.
// Secure + SameSite=None only in production-like deployments; local
// development runs over plain HTTP where Secure cookies are dropped.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(auth.SessionTTL.Seconds()),
	}
	if h.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// clearSessionCookie overwrites the cookie with an empty, already-expired
// value. The token itself stays cryptographically valid until its natural
// expiry; logout is client-side only.
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	}
	if h.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, cookie)
}

// Register handles POST /register - create a new user account
func (h *AuthHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(r, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.DateOfBirth == "" ||
		req.Gender == "" || req.EmailID == "" || req.PhoneNumber == "" || req.Password == "" {
		logRequest(r, "error", "Missing required fields", zap.String("emailID", req.EmailID))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("All fields are required"))
		return
	}

	if !req.Gender.IsValid() {
		logRequest(r, "error", "Invalid gender value", zap.String("gender", string(req.Gender)))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Gender must be Male, Female or Other"))
		return
	}

	logRequest(r, "info", "Registering user", zap.String("emailID", req.EmailID))

	// Existence check for a friendly error; the unique index on emailID
	// is what actually closes the race between concurrent registrations.
	if _, err := h.users.FindByEmail(ctx, req.EmailID); err == nil {
		logRequest(r, "info", "Email already registered", zap.String("emailID", req.EmailID))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("User already exists."))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		logRequest(r, "error", "Failed to check existing user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred while registering"))
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logRequest(r, "error", "Password hashing failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Failed to process password"))
		return
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		EmailID:     req.EmailID,
		PhoneNumber: req.PhoneNumber,
		Password:    hashedPassword,
		CreatedAt:   time.Now(),
	}

	userID, err := h.users.Insert(ctx, user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		// Lost the race to a concurrent registration with the same email
		logRequest(r, "info", "Duplicate email on insert", zap.String("emailID", req.EmailID))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("User already exists."))
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to create user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred while registering"))
		return
	}

	logRequest(r, "info", "User registered successfully", zap.String("user_id", userID.Hex()))

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Registration successful!"})
}

// Login handles POST /login - verify credentials and issue a session token
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(r, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	if req.EmailID == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Email and password required!"))
		return
	}

	user, err := h.users.FindByEmail(ctx, req.EmailID)
	if errors.Is(err, store.ErrNotFound) {
		// Same message and same bcrypt cost as the wrong-password path,
		// so callers cannot tell which condition failed.
		auth.BurnPasswordCheck(req.Password)
		logRequest(r, "info", "Login for unknown email", zap.String("emailID", req.EmailID))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Invalid credentials"))
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to look up user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred during login"))
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		logRequest(r, "info", "Password mismatch", zap.String("emailID", req.EmailID))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Invalid credentials"))
		return
	}

	token, err := auth.IssueToken(user.ID.Hex(), user.EmailID, h.cfg.JWTSecret, auth.SessionTTL)
	if err != nil {
		logRequest(r, "error", "Failed to issue session token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Error occurred during login"))
		return
	}

	h.setSessionCookie(w, token)

	logRequest(r, "info", "Login successful", zap.String("user_id", user.ID.Hex()))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Login successful",
		"user": models.LoginProfile{
			FirstName: user.FirstName,
			EmailID:   user.EmailID,
		},
	})
}

// Logout handles POST /logout - instructs the client to drop the cookie
func (h *AuthHandler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	claims, ok := requireSession(w, r, h.cfg.JWTSecret)
	if !ok {
		return
	}

	h.clearSessionCookie(w)

	logRequest(r, "info", "Logout successful", zap.String("user_id", claims.UserID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logout successful"})
}

// CheckAuth handles GET /checkAuth - resolve the session's principal to a
// current profile
func (h *AuthHandler) CheckAuth(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	claims, ok := requireSession(w, r, h.cfg.JWTSecret)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logRequest(r, "error", "Invalid user id in session claims", zap.String("user_id", claims.UserID))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Unauthorized"))
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// Principal vanished out-of-band since the token was issued
		logRequest(r, "info", "Session principal not found", zap.String("user_id", claims.UserID))
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errs.NewNotFoundError("User not found"))
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to resolve session principal", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	json.NewEncoder(w).Encode(models.CheckAuthResponse{
		IsAuthenticated: true,
		User: models.CheckAuthUser{
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}
