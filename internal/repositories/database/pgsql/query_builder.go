package pgsql

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// conditions accumulates WHERE clauses and their positional arguments.
type conditions struct {
	clauses []string
	args    []interface{}
}

// add appends a clause written with "?" for each argument; the marks become $n placeholders.
func (c *conditions) add(clause string, args ...interface{}) {
	for _, a := range args {
		c.args = append(c.args, a)
		clause = strings.Replace(clause, "?", "$"+strconv.Itoa(len(c.args)), 1)
	}
	c.clauses = append(c.clauses, clause)
}

func (c *conditions) business(column, businessID string) {
	if !domain.AllBusinesses(businessID) {
		c.add(column+" = ?", businessID)
	}
}

func (c *conditions) dateRange(column string, r domain.DateRange) {
	if !r.Start.IsZero() {
		c.add(column+" >= ?", r.Start)
	}
	if !r.End.IsZero() {
		c.add(column+" <= ?", r.End)
	}
}

// before restricts rows to those after the keyset cursor in newest-first order.
func (c *conditions) before(dateCol, createdCol, seqCol string, date, createdAt time.Time, seq int64) {
	c.add("("+dateCol+", "+createdCol+", "+seqCol+") < (?, ?, ?)", date, createdAt, seq)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// limit appends a LIMIT placeholder for n and returns the clause.
func (c *conditions) limit(n int) string {
	c.args = append(c.args, n)
	return " LIMIT $" + strconv.Itoa(len(c.args))
}
