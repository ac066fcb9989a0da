package repository

import (
	"fmt"
	"time"
)

// sqliteTimestampLayout is what CURRENT_TIMESTAMP produces.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// timestamp scans created_at columns. SQLite may hand back text or time.Time
// depending on how the column was reached; PostgreSQL always returns time.Time.
type timestamp struct {
	dst *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.dst = v.UTC()
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.dst = time.Time{}
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	return nil
}

func (ts timestamp) parse(s string) error {
	for _, layout := range []string{sqliteTimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
