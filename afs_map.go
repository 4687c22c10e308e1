package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// AFSMap is a Map keeping one JSON document per session in an abstract file
// storage location (file://, mem://, s3://, ...). It suits single-writer
// deployments and tests; concurrent writers get whatever consistency the
// underlying scheme provides.
type AFSMap struct {
	fs      afs.Service
	baseURL string
}

// NewAFSMap creates an AFSMap rooted at baseURL.
func NewAFSMap(baseURL string) *AFSMap {
	return &AFSMap{fs: afs.New(), baseURL: baseURL}
}

func (m *AFSMap) assetURL(id string) string {
	return url.Join(m.baseURL, id+".json")
}

// Get implements Map.
func (m *AFSMap) Get(ctx context.Context, id string) (*Session, error) {
	URL := m.assetURL(id)
	exists, err := m.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check session %v: %w", id, err)
	}
	if !exists {
		return nil, nil
	}
	data, err := m.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download session %v: %w", id, err)
	}
	session := &Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %v: %w", id, err)
	}
	return session, nil
}

// Put implements Map.
func (m *AFSMap) Put(ctx context.Context, id string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %v: %w", id, err)
	}
	if err := m.fs.Upload(ctx, m.assetURL(id), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload session %v: %w", id, err)
	}
	return nil
}

// Remove implements Map.
func (m *AFSMap) Remove(ctx context.Context, id string) error {
	URL := m.assetURL(id)
	exists, err := m.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check session %v: %w", id, err)
	}
	if !exists {
		return nil
	}
	if err := m.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete session %v: %w", id, err)
	}
	return nil
}

// Range implements Map.
func (m *AFSMap) Range(ctx context.Context, fn func(id string, session *Session) bool) error {
	exists, err := m.fs.Exists(ctx, m.baseURL)
	if err != nil {
		return fmt.Errorf("failed to check session store %v: %w", m.baseURL, err)
	}
	if !exists {
		return nil
	}
	objects, err := m.fs.List(ctx, m.baseURL)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(object.Name(), ".json")
		session, err := m.Get(ctx, id)
		if err != nil {
			return err
		}
		if session == nil {
			continue
		}
		if !fn(id, session) {
			return nil
		}
	}
	return nil
}
