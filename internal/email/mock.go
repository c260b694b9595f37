package email

import (
	"context"
	"sync"
)

func NewMock() *Mock {
	return &Mock{
		mutex:         new(sync.RWMutex),
		verifyEmails:  make(map[string]string),
		verifyTargets: make(map[string]string),
		digests:       make(map[string][]string),
	}
}

type Mock struct {
	mutex         *sync.RWMutex
	verifyEmails  map[string]string
	verifyTargets map[string]string
	digests       map[string][]string
}

func (m *Mock) SendVerifyEmail(ctx context.Context, to, hash, redirect string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.verifyEmails[to] = hash
	m.verifyTargets[to] = redirect
	return nil
}

func (m *Mock) VerifyEmailHash(to string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.verifyEmails[to]
}

func (m *Mock) VerifyEmailRedirect(to string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.verifyTargets[to]
}

func (m *Mock) SendRenewalDigest(ctx context.Context, to, body string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.digests[to] = append(m.digests[to], body)
	return nil
}

func (m *Mock) RenewalDigests(to string) []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.digests[to]
}
