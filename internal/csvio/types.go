package csvio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderlens/internal/timeparse"
)

// Cell formats shared by every table the pipeline writes. Timestamps are
// day-first so a written table can be re-read through the same normalizer.
const (
	TimestampLayout = "02/01/2006 15:04"
	DateLayout      = "2006-01-02"
)

// Time is a nullable instant cell. The zero value is null.
type Time struct {
	Time  time.Time
	Valid bool
}

func NewTime(t time.Time) Time { return Time{Time: t, Valid: true} }

func (t Time) MarshalCSV() (string, error) {
	if !t.Valid {
		return "", nil
	}
	return t.Time.Format(TimestampLayout), nil
}

func (t *Time) UnmarshalCSV(s string) error {
	parsed, ok := timeparse.ParseTimestamp(s)
	if !ok {
		*t = Time{}
		return nil
	}
	*t = Time{Time: parsed, Valid: true}
	return nil
}

// Date is a nullable calendar-date cell.
type Date struct {
	Time  time.Time
	Valid bool
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location()), Valid: true}
}

func (d Date) MarshalCSV() (string, error) {
	if !d.Valid {
		return "", nil
	}
	return d.Time.Format(DateLayout), nil
}

func (d *Date) UnmarshalCSV(s string) error {
	parsed, ok := timeparse.ParseTimestamp(s)
	if !ok {
		*d = Date{}
		return nil
	}
	*d = NewDate(parsed)
	return nil
}

// Float is a nullable numeric cell. Unparseable input reads as null rather
// than failing the row.
type Float struct {
	Value float64
	Valid bool
}

func NewFloat(v float64) Float { return Float{Value: v, Valid: true} }

func (f Float) MarshalCSV() (string, error) {
	if !f.Valid {
		return "", nil
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64), nil
}

func (f *Float) UnmarshalCSV(s string) error {
	*f = ParseFloat(s)
	return nil
}

// ParseFloat is the lenient money/number parser: trims currency glyphs and
// grouping commas, treats blanks and placeholder text as null.
func ParseFloat(s string) Float {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "n/a":
		return Float{}
	}
	s = strings.TrimLeft(s, "£$€ ")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Float{}
	}
	return Float{Value: v, Valid: true}
}

// Int is a nullable integer cell.
type Int struct {
	Value int
	Valid bool
}

func NewInt(v int) Int { return Int{Value: v, Valid: true} }

func (i Int) MarshalCSV() (string, error) {
	if !i.Valid {
		return "", nil
	}
	return strconv.Itoa(i.Value), nil
}

func (i *Int) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*i = Int{}
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// tolerate "3.0" style integers written by other tools
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*i = Int{}
			return nil
		}
		v = int(f)
	}
	*i = Int{Value: v, Valid: true}
	return nil
}

// Bool01 is a nullable boolean written as a 0/1 indicator column.
type Bool01 struct {
	Value bool
	Valid bool
}

func NewBool01(v bool) Bool01 { return Bool01{Value: v, Valid: true} }

func (b Bool01) MarshalCSV() (string, error) {
	if !b.Valid {
		return "", nil
	}
	if b.Value {
		return "1", nil
	}
	return "0", nil
}

func (b *Bool01) UnmarshalCSV(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		*b = Bool01{}
	case "1", "true", "t", "yes":
		*b = Bool01{Value: true, Valid: true}
	case "0", "false", "f", "no":
		*b = Bool01{Value: false, Valid: true}
	default:
		return fmt.Errorf("bad indicator value %q", s)
	}
	return nil
}
