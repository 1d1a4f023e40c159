package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	appConfig "github.com/raushankrgupta/shoplungu/config"
	"go.uber.org/zap"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already sent, nothing left to tell the client
		zap.L().Warn("Error encoding JSON response", zap.Error(err))
	}
}

// RespondError sends a JSON error response and records the message in the request log.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		zap.L().Warn("Request failed", zap.String("error", message), zap.Int("status", status))
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// PresignImageURLs generates presigned URLs for a slice of image keys/URLs.
// http(s) URLs and local paths are kept as is, and so is every key when no image
// bucket is configured. S3 failures fall back to the original key.
func PresignImageURLs(ctx context.Context, images []string) []string {
	if appConfig.AWSBucketName == "" || len(images) == 0 {
		return images
	}
	presignedURLs := make([]string, 0, len(images))
	for _, img := range images {
		if strings.HasPrefix(img, "http") || strings.HasPrefix(img, "/") {
			presignedURLs = append(presignedURLs, img)
			continue
		}
		if url, err := GetPresignedURL(ctx, img); err == nil {
			presignedURLs = append(presignedURLs, url)
		} else {
			presignedURLs = append(presignedURLs, img)
		}
	}
	return presignedURLs
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// CORSMiddleware allows browser clients on any origin
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "X-Session-Token")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
