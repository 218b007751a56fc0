package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blog-service/auth"

	"github.com/umakantv/go-utils/errs"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// logRequest logs the request with the specified format.
// Shared package-level function to keep the auth and post handlers
// consistent; uses structured logging with method/path fields.
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	// Build full message (timestamp - method - path - message)
	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + r.Method + " - " + r.URL.Path
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

// requireSession is the authentication gate for protected handlers: it
// extracts and verifies the session cookie before any data access. On
// failure it writes the 401 itself and returns ok=false. The specific
// failure (missing/malformed/expired/tampered) goes to the server log
// only; the client sees a uniform unauthorized response.
func requireSession(w http.ResponseWriter, r *http.Request, secret []byte) (*auth.SessionClaims, bool) {
	claims, err := auth.FromRequest(r, secret)
	if err == nil {
		return claims, true
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if errors.Is(err, auth.ErrNoToken) {
		logRequest(r, "info", "No session cookie")
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Please login to continue"))
	} else {
		logRequest(r, "info", "Session token rejected", zap.Error(err))
		json.NewEncoder(w).Encode(errs.NewAuthenticationError("Unauthorized"))
	}
	return nil, false
}
