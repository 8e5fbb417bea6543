/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"fmt"

	"mitei-ledger-go/internal/models"

	"go.uber.org/zap"
)

func (s *BankService) openSession(ref *models.AccountRef) *models.Session {
	now := s.now()
	session := &models.Session{
		Token:         ref.Id,
		AccountNumber: ref.AccountNumber,
		CreatedAt:     now,
		LastSeen:      now,
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	zap.L().Info("Session opened", zap.String("account_number", ref.AccountNumber))
	return session
}

// Session resolves token to its session and refreshes its idle timer.
// A copy is returned; the session table is only mutated by BankService.
func (s *BankService) Session(token string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok || token == "" {
		return models.Session{}, ErrNotLoggedIn
	}

	now := s.now()
	if s.idleTimeout > 0 && now.Sub(session.LastSeen) > s.idleTimeout {
		delete(s.sessions, token)
		zap.L().Info("Session expired", zap.String("account_number", session.AccountNumber))
		return models.Session{}, fmt.Errorf("%w: idle since %s", ErrSessionExpired, session.LastSeen.Format("15:04:05"))
	}

	session.LastSeen = now
	return *session, nil
}

// Logout ends the session. Logging out an unknown token is not an error.
func (s *BankService) Logout(token string) *models.OperationResult {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		zap.L().Info("Session closed", zap.String("account_number", session.AccountNumber))
	}
	return &models.OperationResult{Success: true, Message: "Logged out successfully."}
}

// ExpireIdleSessions drops every session idle for longer than the timeout
// and returns how many were removed.
func (s *BankService) ExpireIdleSessions() int {
	if s.idleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expired := 0
	for token, session := range s.sessions {
		if now.Sub(session.LastSeen) > s.idleTimeout {
			delete(s.sessions, token)
			expired++
		}
	}
	if expired > 0 {
		zap.L().Info("Expired idle sessions", zap.Int("count", expired))
	}
	return expired
}
