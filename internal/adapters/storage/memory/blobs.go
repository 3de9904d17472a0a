package memory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

type blob struct {
	contentType string
	data        []byte
}

// BlobStore guarda fotos en memoria y las sirve bajo BaseURL.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string]blob
	baseURL string
}

func NewBlobStore(baseURL string) *BlobStore {
	return &BlobStore{
		objects: make(map[string]blob),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *BlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[key] = blob{contentType: contentType, data: data}
	s.mu.Unlock()

	return s.baseURL + "/" + key, nil
}

// Handler sirve GET {baseURL}/{key}. Se monta en el router.
func (s *BlobStore) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		s.mu.RLock()
		b, ok := s.objects[key]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", b.contentType)
		http.ServeContent(w, r, key, time.Time{}, bytes.NewReader(b.data))
	}
}
