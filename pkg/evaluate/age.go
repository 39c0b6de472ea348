package evaluate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// TimeFormatUnix selects epoch-second timestamps in CheckAge.
const TimeFormatUnix = "UNIX"

// CheckAge checks that timestamp values are no older than ageHours relative to
// now.
//
// timeFormat is TimeFormatUnix or a strftime pattern such as
// "%Y-%m-%d %H:%M:%S". Timestamps without a zone are read in now's location.
// Any value that does not parse fails the whole check.
func CheckAge(values []string, ageHours float64, timeFormat string, now time.Time) (Verdict, error) {
	if ageHours <= 0 {
		return Verdict{}, Errorf(KindInvalidInput, "Age must be a positive number of hours")
	}
	if err := requireValues(values); err != nil {
		return Verdict{}, err
	}

	stamps := make([]time.Time, len(values))
	for i, v := range values {
		ts, err := parseTimestamp(strings.TrimSpace(v), timeFormat, now.Location())
		if err != nil {
			return Verdict{}, Wrap(KindNotATimestamp, err,
				fmt.Sprintf("Unable to parse '%s' as timestamp with format '%s'", v, timeFormat))
		}
		stamps[i] = ts
	}

	older := newOffenders()
	for i, ts := range stamps {
		if now.Sub(ts).Hours() > ageHours {
			older.add(i)
		}
	}

	hours := strconv.FormatFloat(ageHours, 'f', -1, 64)

	if len(values) == 1 {
		if older.count() == 1 {
			return Verdict{
				Status:    StatusCritical,
				Message:   fmt.Sprintf("Value older than %s hr", hours),
				Offending: older.indices(),
			}, nil
		}
		return pass(fmt.Sprintf("Value younger than %s hr", hours)), nil
	}

	switch older.reduce(len(values)) {
	case reduceAll:
		return Verdict{
			Status:    StatusCritical,
			Message:   fmt.Sprintf("All node(s) values are older than %s hr", hours),
			Offending: older.indices(),
		}, nil
	case reduceSome:
		return Verdict{
			Status:    StatusWarning,
			Message:   fmt.Sprintf("Some node(s) values are older than %s hr", hours),
			Offending: older.indices(),
		}, nil
	default:
		return pass(fmt.Sprintf("All the node(s) values are younger than %s hr", hours)), nil
	}
}

func parseTimestamp(v, format string, loc *time.Location) (time.Time, error) {
	if format == TimeFormatUnix {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(secs, 0).In(loc), nil
	}
	return timefmt.ParseInLocation(v, format, loc)
}
