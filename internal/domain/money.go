package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor units (hundredths of the currency unit).
// Integer arithmetic keeps price × passengers exact.
type Money int64

// Units returns a Money of n whole currency units.
func Units(n int64) Money {
	return Money(n * 100)
}

// Times returns m multiplied by n.
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// CheckedTimes returns m multiplied by n. ok is false when the product does
// not fit in a Money.
func (m Money) CheckedTimes(n int) (product Money, ok bool) {
	if m == 0 || n == 0 {
		return 0, true
	}
	if m == math.MinInt64 && n == -1 {
		return 0, false
	}
	p := m * Money(n)
	if p/Money(n) != m {
		return 0, false
	}
	return p, true
}

// ParseMoney parses "1200", "1200.5", "1200.50" or "1,200.50".
// Negative values and more than two decimals are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("amount is empty")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (hasFrac && (!isDigits(frac) || len(frac) == 0 || len(frac) > 2)) {
		return 0, errors.New("amount must be a non-negative number with at most two decimals")
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return 0, errors.New("amount is too large")
	}
	cents := int64(0)
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	return Money(units*100 + cents), nil
}

// String renders m with thousands separators and two decimals, e.g. "1,200.00".
func (m Money) String() string {
	neg := m < 0
	if neg {
		m = -m
	}
	units := strconv.FormatInt(int64(m)/100, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	cents := int64(m) % 100
	b.WriteByte('.')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(cents, 10))
	return b.String()
}

// MarshalJSON encodes m as a plain decimal number, e.g. 1200.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strings.ReplaceAll(m.String(), ",", "")), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
