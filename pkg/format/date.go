package format

import (
	"database/sql"
	"fmt"
	"regexp"
	"sync"
	"time"
	_ "time/tzdata"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	locMu    sync.RWMutex
	location = defaultLocation()
)

func defaultLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*60*60)
}

// Timestamp is implemented by database timestamp wrappers (protobuf
// timestamps, document-store timestamps) that can produce a time.Time.
type Timestamp interface {
	AsTime() time.Time
}

// SetLocation changes the time zone used to render dates. An unknown name
// keeps the current location and returns the load error.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	locMu.Lock()
	location = loc
	locMu.Unlock()
	return nil
}

// Location returns the time zone used to render dates.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return location
}

// BRDate converts v into a DD/MM/YYYY string.
//
// ISO calendar dates ("2024-03-05") are rearranged without time zone
// conversion. Times and timestamp objects are rendered in Location().
// Missing input gives "" and unrecognized shapes their fmt.Sprint form.
func BRDate(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if x == "" {
			return ""
		}
		if isoDate.MatchString(x) {
			return x[8:10] + "/" + x[5:7] + "/" + x[0:4]
		}
		return x
	case time.Time:
		return x.In(Location()).Format("02/01/2006")
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.In(Location()).Format("02/01/2006")
	case sql.NullTime:
		if !x.Valid {
			return ""
		}
		return x.Time.In(Location()).Format("02/01/2006")
	case Timestamp:
		return x.AsTime().In(Location()).Format("02/01/2006")
	}
	return fmt.Sprint(v)
}

// BRDateTime renders t as "DD/MM/YYYY HH:MM:SS".
func BRDateTime(t time.Time) string {
	return t.In(Location()).Format("02/01/2006 15:04:05")
}

// FileDate renders t as "DD-MM-YYYY" for use in file names.
func FileDate(t time.Time) string {
	return t.In(Location()).Format("02-01-2006")
}

// ISODate renders t as "YYYY-MM-DD" in Location().
func ISODate(t time.Time) string {
	return t.In(Location()).Format("2006-01-02")
}

// IsISODate reports whether s is a YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	if !isoDate.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
