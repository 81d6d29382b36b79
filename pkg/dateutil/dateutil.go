// Package dateutil normalizes the date strings found in the record
// store and derives schedule status relative to today. The store keeps
// dates as text in several historical shapes (DD/MM/YYYY, YYYY-MM-DD,
// full timestamps), so every read goes through Normalize before any
// comparison.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinel is returned for empty or unparseable dates.
const Sentinel = "-"

// Timestamp layout used for all stored timestamps. Text on purpose:
// the store would otherwise reinterpret cells per its own locale.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the canonical calendar-date layout.
const DateLayout = "2006-01-02"

// Normalize converts a raw date string to canonical YYYY-MM-DD.
//
// Recognized inputs, in priority order:
//  1. contains "T"  — full timestamp, its calendar date is returned
//  2. contains " "  — the part before the space is normalized
//  3. d/m/yyyy or d-m-yyyy (first token ≤2 chars, last 4) — reordered
//  4. yyyy-m-d or yyyy/m/d — zero-padded, order kept
//
// Anything else is returned unchanged; callers that need to compare
// must treat non-canonical output as unparseable. Normalize is pure,
// never panics, and is idempotent over recognized shapes.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// tolerate timestamps without a zone
			t, err = time.Parse("2006-01-02T15:04:05", s)
		}
		if err != nil {
			// fall back to the date part before the T
			if head, ok := normalizeHead(strings.SplitN(s, "T", 2)[0]); ok {
				return head
			}
			return s
		}
		return t.Format(DateLayout)
	}

	if strings.Contains(s, " ") {
		if head, ok := normalizeHead(strings.SplitN(s, " ", 2)[0]); ok {
			return head
		}
		return s
	}

	parts := splitDate(s)
	if len(parts) != 3 {
		return s
	}

	switch {
	case len(parts[0]) <= 2 && len(parts[2]) == 4:
		// DD/MM/YYYY
		return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
	case len(parts[0]) == 4:
		// already YYYY-MM-DD, re-emit zero-padded
		return fmt.Sprintf("%s-%s-%s", parts[0], pad2(parts[1]), pad2(parts[2]))
	default:
		return s
	}
}

// normalizeHead normalizes the date part of a timestamp-like string.
// ok is false when that part is not a recognizable calendar date, so
// free text containing separators is never truncated to its first token.
func normalizeHead(part string) (string, bool) {
	norm := Normalize(part)
	if _, err := time.Parse(DateLayout, norm); err != nil {
		return "", false
	}
	return norm, true
}

func splitDate(s string) []string {
	if strings.Contains(s, "/") {
		return strings.Split(s, "/")
	}
	if strings.Contains(s, "-") {
		return strings.Split(s, "-")
	}
	return nil
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// Parse normalizes raw and parses it as a calendar date.
// ok is false for empty or unrecognized input.
func Parse(raw string) (time.Time, bool) {
	norm := Normalize(raw)
	if norm == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, norm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Status is a schedule bucket relative to today.
type Status string

const (
	StatusOverdue  Status = "Overdue"
	StatusPending  Status = "Pending"
	StatusUpcoming Status = "Upcoming"
	StatusPlanned  Status = "Planned"
	StatusNone     Status = Sentinel
)

// DynamicStatus buckets a target date against today (both truncated to
// midnight): past → Overdue, today → Pending, within 7 days → Upcoming,
// beyond → Planned. Unparseable input yields StatusNone.
func DynamicStatus(dateStr string, today time.Time) Status {
	target, ok := Parse(dateStr)
	if !ok {
		return StatusNone
	}

	t := truncate(today)
	days := int(target.Sub(t).Hours() / 24)

	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusPending
	case days <= 7:
		return StatusUpcoming
	default:
		return StatusPlanned
	}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InRange reports whether the record date falls inside [from, to],
// where from/to are calendar dates and either may be empty (open end).
// A record with no parseable date fails whenever a bound is set.
func InRange(dateStr, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	target, ok := Parse(dateStr)
	if !ok {
		return false
	}
	if from != "" {
		if f, ok := Parse(from); ok && target.Before(f) {
			return false
		}
	}
	if to != "" {
		if t, ok := Parse(to); ok && target.After(t) {
			return false
		}
	}
	return true
}

// FormatDisplay renders a canonical date as DD/MM/YYYY for UI columns.
// Non-canonical input comes back unchanged.
func FormatDisplay(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return raw
	}
	return t.Format("02/01/2006")
}

// AddDays returns the calendar date days after raw, canonical form.
// Unparseable input yields the empty string.
func AddDays(raw string, days int) string {
	t, ok := Parse(raw)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// DayCount parses a TAT day count; non-numeric input counts as zero.
func DayCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
