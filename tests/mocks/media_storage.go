package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
)

type storedObject struct {
	folderID    string
	contentType string
	data        []byte
}

// MockMediaStorage keeps uploaded objects in a map keyed by object key, the
// same key the S3 client would produce.
type MockMediaStorage struct {
	mu         sync.Mutex
	objects    map[string]storedObject
	uploadErr  error
	deleteErr  error
	publicURL  string
	baseFolder string
}

func NewMockMediaStorage() *MockMediaStorage {
	return &MockMediaStorage{
		objects:    make(map[string]storedObject),
		publicURL:  "https://media.test.local",
		baseFolder: "moktashef",
	}
}

func (m *MockMediaStorage) FailUploadWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErr = err
}

func (m *MockMediaStorage) FailDeleteWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

func (m *MockMediaStorage) UploadProfileImage(
	ctx context.Context,
	folderID, filename string,
	file io.Reader,
	contentType string,
) (account.ProfileImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return account.ProfileImage{}, m.uploadErr
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return account.ProfileImage{}, err
	}

	key := fmt.Sprintf("%s/users/%s/profile/%s", m.baseFolder, folderID, filename)
	m.objects[key] = storedObject{
		folderID:    folderID,
		contentType: contentType,
		data:        data,
	}

	return account.ProfileImage{
		URL: fmt.Sprintf("%s/%s", m.publicURL, key),
		ID:  key,
	}, nil
}

func (m *MockMediaStorage) DeleteObject(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}

	delete(m.objects, key)
	return nil
}

func (m *MockMediaStorage) DeleteFolder(ctx context.Context, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}

	prefix := fmt.Sprintf("%s/users/%s/", m.baseFolder, folderID)
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

func (m *MockMediaStorage) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func (m *MockMediaStorage) AssertObjectExists(t *testing.T, key string) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		t.Errorf("expected object %s to exist, have %d objects", key, len(m.objects))
	}
}

func (m *MockMediaStorage) AssertObjectNotExists(t *testing.T, key string) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; ok {
		t.Errorf("expected object %s to not exist", key)
	}
}

func (m *MockMediaStorage) AssertFolderEmpty(t *testing.T, folderID string) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := fmt.Sprintf("%s/users/%s/", m.baseFolder, folderID)
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			t.Errorf("expected folder %s to be empty, found object %s", folderID, key)
		}
	}
}
