package sqlconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Date scans DATE columns. Drivers hand these back either as time.Time or as
// text, depending on the backend and DSN.
type Date struct {
	time.Time
}

func (d *Date) Scan(src any) error {
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// NullTime scans nullable timestamp columns.
type NullTime struct {
	Time  time.Time
	Valid bool
}

func (n *NullTime) Scan(src any) error {
	if src == nil {
		n.Time, n.Valid = time.Time{}, false
		return nil
	}
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	n.Time, n.Valid = t.UTC(), true
	return nil
}

func scanTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return dateparse.ParseIn(v, time.UTC)
	case []byte:
		return dateparse.ParseIn(string(v), time.UTC)
	case nil:
		return time.Time{}, fmt.Errorf("cannot scan NULL into a time")
	default:
		return time.Time{}, fmt.Errorf("cannot scan %T into a time", src)
	}
}

// CellText renders a scanned driver value as table cell text. NULL becomes "".
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
