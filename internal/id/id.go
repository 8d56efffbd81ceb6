// Package id generates prefixed identifiers for persisted records.
package id

import (
	"fmt"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// timedSuffixLen is the nanoid length appended to time-derived ids.
const timedSuffixLen = 6

// Timed creates a time-derived ID: prefix-unixms-nanoid6 (e.g., "s-1718000000000-Xa3_9k").
// The millisecond component keeps ids roughly ordered by creation time and the
// short nanoid keeps two ids minted in the same millisecond apart.
func Timed(prefix string, t time.Time) (string, error) {
	suffix, err := gonanoid.New(timedSuffixLen)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + suffix, nil
}
