// Package media stores uploaded photos and videos and returns their public
// URLs.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	// Put stores body under key and returns the public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds apartments/{id}/{category}/{uuid}{ext}.
func ObjectKey(apartmentID, category, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return path.Join("apartments", apartmentID, category, uuid.NewString()+ext)
}

// DecodeDataURL accepts "data:image/jpeg;base64,...." or bare base64.
func DecodeDataURL(s string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	if strings.HasPrefix(s, "data:") {
		header, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data url")
		}
		meta := strings.TrimPrefix(header, "data:")
		if mt, _, found := strings.Cut(meta, ";"); found && mt != "" {
			contentType = mt
		}
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}
	return data, contentType, nil
}
