package api

import (
	"context"
	"encoding/json"
	"sync"
)

// SyncSession serializes access to a Session so one session can be shared by
// concurrent callers.
type SyncSession struct {
	mu      sync.Mutex
	session *Session
}

func NewSyncSession(session *Session) *SyncSession {
	return &SyncSession{session: session}
}

func (s *SyncSession) Call(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Call(ctx, method, params)
}

func (s *SyncSession) Authenticate(ctx context.Context, user, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Authenticate(ctx, user, password)
}
