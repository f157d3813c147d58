// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

// RefreshFunc exchanges the refresh token of cred for new session tokens.
type RefreshFunc func(ctx context.Context, cred models.Credential) (models.Credential, error)

// Session holds the bearer credential of the current session. Concurrent
// refreshes of the same stale token collapse into one call.
type Session struct {
	mu   sync.RWMutex
	cred models.Credential

	refresh RefreshFunc
	group   singleflight.Group
	log     *logger.Logger
}

// NewSession returns a session starting with cred.
func NewSession(cred models.Credential, refresh RefreshFunc, log *logger.Logger) *Session {
	cred.AccessToken = strings.TrimSpace(cred.AccessToken)
	cred.RefreshToken = strings.TrimSpace(cred.RefreshToken)

	return &Session{cred: cred, refresh: refresh, log: log}
}

// Credential returns a copy of the current credential.
func (s *Session) Credential() models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cred
}

func (s *Session) set(cred models.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cred.UID == "" {
		cred.UID = s.cred.UID
	}
	s.cred = cred
}

// Refresh renews the session after staleToken was rejected. When the
// session already moved past staleToken the current credential is returned
// without calling the server.
func (s *Session) Refresh(ctx context.Context, staleToken string) (models.Credential, error) {
	if cur := s.Credential(); cur.AccessToken != staleToken {
		return cur, nil
	}

	v, err, shared := s.group.Do("refresh", func() (any, error) {
		cur := s.Credential()
		if cur.AccessToken != staleToken {
			return cur, nil
		}
		if s.refresh == nil || cur.RefreshToken == "" {
			return nil, fmt.Errorf("%w: session cannot be refreshed", ErrAuthFailed)
		}

		cred, err := s.refresh(ctx, cur)
		if err != nil {
			return nil, err
		}
		s.set(cred)

		return s.Credential(), nil
	})
	if err != nil {
		s.log.Err(err).Msg("session refresh failed")
		return models.Credential{}, fmt.Errorf("refresh session: %w", err)
	}

	s.log.Debug().Bool("shared", shared).Msg("session refreshed")

	return v.(models.Credential), nil
}
