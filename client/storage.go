package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const documentsBucket = "documentos"

// StoredFile is one entry in a user's document folder.
type StoredFile struct {
	Name      string `json:"name"`
	PublicURL string `json:"-"`
}

// DocumentStorage is the boundary contract to the external file store.
// The portal only lists, uploads and links documents; storage semantics
// live on the other side.
type DocumentStorage interface {
	List(ctx context.Context, userID string) ([]StoredFile, error)
	Upload(ctx context.Context, userID, fileName string, contentType string, r io.Reader) (StoredFile, error)
	PublicURL(userID, fileName string) string
}

// SupabaseStorage implements DocumentStorage against the storage REST
// endpoints, keyed under documentos/<userID>/.
type SupabaseStorage struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewSupabaseStorage(baseURL, anonKey string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *SupabaseStorage) List(ctx context.Context, userID string) ([]StoredFile, error) {
	payload, err := json.Marshal(map[string]any{
		"prefix": userID,
		"limit":  100,
		"offset": 0,
		"sortBy": map[string]string{"column": "name", "order": "asc"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/storage/v1/object/list/%s", s.baseURL, documentsBucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.anonKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode}
	}

	var files []StoredFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, err
	}
	for i := range files {
		files[i].PublicURL = s.PublicURL(userID, files[i].Name)
	}
	return files, nil
}

// Upload stores the content under a generated unique name that keeps the
// original extension.
func (s *SupabaseStorage) Upload(ctx context.Context, userID, fileName string, contentType string, r io.Reader) (StoredFile, error) {
	ext := path.Ext(fileName)
	unique := uuid.NewString() + ext

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s/%s", s.baseURL, documentsBucket, userID, unique)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return StoredFile{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", s.anonKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return StoredFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StoredFile{}, &RequestError{Status: resp.StatusCode}
	}

	return StoredFile{Name: unique, PublicURL: s.PublicURL(userID, unique)}, nil
}

func (s *SupabaseStorage) PublicURL(userID, fileName string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s/%s", s.baseURL, documentsBucket, userID, fileName)
}
