package auth

import (
	"context"
	"errors"
	"sync"
)

type MockCredentialRepository struct {
	mu          sync.Mutex
	credentials map[string]*Credential
	shouldFail  bool
	updates     int
	creates     int
}

func newMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{credentials: map[string]*Credential{}}
}

func (m *MockCredentialRepository) FindByUsername(_ context.Context, username string) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return nil, errors.New("database error")
	}
	credential, ok := m.credentials[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *credential
	return &copied, nil
}

func (m *MockCredentialRepository) Create(_ context.Context, credential *Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return errors.New("database error")
	}
	copied := *credential
	m.credentials[credential.Username] = &copied
	m.creates++
	return nil
}

func (m *MockCredentialRepository) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, credential := range m.credentials {
		if credential.ID == id {
			credential.PasswordHash = passwordHash
			m.updates++
			return nil
		}
	}
	return ErrUserNotFound
}
