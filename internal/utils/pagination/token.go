package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the keyset position of the last row of a page: rows are ordered by date, created_at and
// insertion sequence, newest first.
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	Seq       int64
}

// EncodeToken creates a base64 encoded token from the last row of a page.
// This is used for consistent pagination across different repositories.
func EncodeToken(c Cursor) string {
	return EncodeMultiFieldToken(c.Date.Format(timeFormat), c.CreatedAt.Format(timeFormat), strconv.FormatInt(c.Seq, 10))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (seq parse): %w", err)
	}

	return Cursor{Date: date, CreatedAt: createdAt, Seq: seq}, nil
}

// Before reports whether a row at (date, createdAt, seq) sorts after c in newest-first order,
// i.e. belongs on a page following the one c ends.
func (c Cursor) Before(date, createdAt time.Time, seq int64) bool {
	if !date.Equal(c.Date) {
		return date.Before(c.Date)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.Before(c.CreatedAt)
	}
	return seq < c.Seq
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
