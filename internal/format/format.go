// Package format converts byte counts, percentages and epoch timestamps
// into the strings shown in awsls reports.
package format

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Units lists the byte units from smallest to largest.
var Units = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB"}

// ValidationError reports malformed input to a helper. Callers treat it as
// fatal; nothing in the report path recovers from it.
type ValidationError struct {
	Func string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Func, e.Msg)
}

func checkArgs(fn string, precision, base int) error {
	if precision < 0 {
		return &ValidationError{Func: fn, Msg: "precision is not a valid number"}
	}
	if base < 2 {
		return &ValidationError{Func: fn, Msg: "base is not a valid number"}
	}
	return nil
}

// Bytes2Human converts size in bytes to the largest unit below base, or to
// unit when one is given. It returns the formatted number and its unit.
//
//	Bytes2Human(2048, "", 2, 1024)        -> "2.00", "KB"
//	Bytes2Human(27273042329, "MB", 2, 1024) -> "26009.60", "MB"
func Bytes2Human(size float64, unit string, precision, base int) (string, string, error) {
	if err := checkArgs("bytes2human", precision, base); err != nil {
		return "", "", err
	}

	if unit != "" {
		idx := slices.Index(Units, unit)
		if idx < 0 {
			return "", "", &ValidationError{Func: "bytes2human", Msg: "unit must be KB, MB, GB, TB, PB or EB"}
		}
		num := size
		for range idx {
			num /= float64(base)
		}
		return strconv.FormatFloat(num, 'f', precision, 64), unit, nil
	}

	num := size
	for i, u := range Units {
		if num < float64(base) {
			return strconv.FormatFloat(num, 'f', precision, 64), u, nil
		}
		if i == len(Units)-1 {
			break
		}
		num /= float64(base)
	}
	return "", "", &ValidationError{Func: "bytes2human", Msg: "value greater than the highest unit"}
}

// HumanSize renders size as "<number> <unit>" with two decimals in base 1024.
func HumanSize(size float64) (string, error) {
	num, unit, err := Bytes2Human(size, "", 2, 1024)
	if err != nil {
		return "", err
	}
	return num + " " + unit, nil
}

// Human2Bytes converts size expressed in unit back to bytes.
func Human2Bytes(size float64, unit string, precision, base int) (string, error) {
	if err := checkArgs("human2bytes", precision, base); err != nil {
		return "", err
	}
	idx := slices.Index(Units, unit)
	if idx < 1 {
		return "", &ValidationError{Func: "human2bytes", Msg: "invalid unit, must be KB, MB, GB, TB, PB or EB"}
	}
	num := size
	for range idx {
		num *= float64(base)
	}
	return strconv.FormatFloat(num, 'f', precision, 64), nil
}

// PctTwoNumbers returns what percent n1 is of n2. A zero n2 yields zero.
func PctTwoNumbers(n1, n2 float64, precision int) string {
	if n2 == 0 {
		return strconv.FormatFloat(0, 'f', precision, 64)
	}
	return strconv.FormatFloat(n1*100/n2, 'f', precision, 64)
}

// XPctOfNumber returns pct percent of number.
func XPctOfNumber(pct, number float64, precision int) string {
	return strconv.FormatFloat(number*pct/100, 'f', precision, 64)
}

var now = time.Now

// EpochToHuman formats a unix timestamp with a Go layout. An empty layout
// uses time.ANSIC.
func EpochToHuman(epoch int64, layout string, utc bool) string {
	if layout == "" {
		layout = time.ANSIC
	}
	t := time.Unix(epoch, 0)
	if utc {
		t = t.UTC()
	}
	return t.Format(layout)
}

// EpochNow returns the current unix timestamp.
func EpochNow() int64 {
	return now().Unix()
}

// EpochMinutesAgo returns the unix timestamp m minutes before now.
func EpochMinutesAgo(m int) int64 {
	return now().Add(-time.Duration(m) * time.Minute).Unix()
}

// EpochHoursAgo returns the unix timestamp h hours before now.
func EpochHoursAgo(h int) int64 {
	return now().Add(-time.Duration(h) * time.Hour).Unix()
}

// EpochDaysAgo returns the unix timestamp d days before now.
func EpochDaysAgo(d int) int64 {
	return now().AddDate(0, 0, -d).Unix()
}
