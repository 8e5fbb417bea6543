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

package money

import (
	"fmt"
	"math"
	"strings"

	"mitei-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MinorUnits is the number of decimal places in the ledger currency.
const MinorUnits = 2

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	printer   = message.NewPrinter(language.English)
)

// ParseAmount converts a user-entered major-unit amount ("12.50", "$1,000")
// into minor units. The amount must be positive and carry at most MinorUnits
// decimal places.
func ParseAmount(input string) (int64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: amount is required", store.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", store.ErrInvalidAmount, input)
	}

	minor := d.Shift(MinorUnits)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", store.ErrInvalidAmount, input, MinorUnits)
	}
	if !minor.IsPositive() {
		return 0, fmt.Errorf("%w: %q", store.ErrInvalidAmount, input)
	}
	if minor.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: %w: %q", store.ErrInvalidAmount, store.ErrAmountTooLarge, input)
	}
	return minor.IntPart(), nil
}

// String renders minor units as a plain major-unit decimal, e.g. 12345 -> "123.45".
func String(minor int64) string {
	return decimal.New(minor, -MinorUnits).StringFixed(MinorUnits)
}

// Format renders minor units for display, e.g. 123456789 -> "$1,234,567.89".
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
	}
	d := decimal.New(minor, -MinorUnits).Abs()
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(MinorUnits).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), frac)
}
