package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// ParseRelative parses a date either in the strict "YYYY-MM-DD" format or
// relative to today, with a mandatory sign: "-1d", "+2w", "+3m", "-1y".
// "0d" is today.
func ParseRelative(str string, today Date) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "0d" {
		return today, nil
	}
	match := relativeDateRE.FindStringSubmatch(str)
	if match == nil {
		return Parse(str)
	}
	num, err := strconv.Atoi(match[2])
	if err != nil {
		// the regexp only captures digits, this is an overflow.
		return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
	}
	if match[1] == "-" {
		num = -num
	}
	switch match[3] {
	case "w":
		return today.Add(num * 7), nil
	case "m":
		return New(today.Year(), today.Month()+time.Month(num), today.Day()), nil
	case "y":
		return New(today.Year()+num, today.Month(), today.Day()), nil
	default:
		return today.Add(num), nil
	}
}
