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

package ledger

import (
	"context"

	"go.uber.org/zap"
)

// GetBalance returns a snapshot of the account balance in minor units.
func (s *Service) GetBalance(_ context.Context, accountNumber string) (int64, error) {
	acct, err := s.lookup(accountNumber)
	if err != nil {
		return 0, err
	}

	acct.mu.Lock()
	balance := acct.balance
	acct.mu.Unlock()

	zap.L().Debug("Retrieved balance", zap.String("account_number", accountNumber), zap.Int64("balance", balance))
	return balance, nil
}
