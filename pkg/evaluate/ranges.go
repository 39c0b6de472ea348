package evaluate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/usestring/xmlprobe/pkg/threshold"
)

// CheckRange evaluates values against a threshold spec. The spec is parsed
// before any value is looked at, so a bad threshold fails regardless of values.
//
// Values that alert produce severity's status. The message names the
// offending indices ("Partition 2 ...", "Partitions 0, 1 ...") unless there
// is exactly one value, in which case indexing is omitted.
func CheckRange(values []string, spec string, severity Severity) (Verdict, error) {
	r, err := threshold.Parse(spec)
	if err != nil {
		return Verdict{}, Wrap(KindInvalidRangeFormat, err,
			fmt.Sprintf("Invalid format of %s threshold", severity))
	}

	if err := requireValues(values); err != nil {
		return Verdict{}, err
	}

	nums, err := parseNumbers(values)
	if err != nil {
		return Verdict{}, err
	}

	bad := newOffenders()
	for i, v := range nums {
		if r.Alerts(v) {
			bad.add(i)
		}
	}

	if bad.count() == 0 {
		return pass(fmt.Sprintf("All the node(s) values within %s threshold %s", severity, r)), nil
	}

	idx := bad.indices()
	var msg string
	switch {
	case len(values) == 1:
		msg = fmt.Sprintf("Value %s range %s", r.Relation(), r)
	case len(idx) == 1:
		msg = fmt.Sprintf("Partition %d value %s range %s", idx[0], r.Relation(), r)
	default:
		msg = fmt.Sprintf("Partitions %s values %s range %s", joinInts(idx), r.Relation(), r)
	}

	return Verdict{Status: severity.Status(), Message: msg, Offending: idx}, nil
}

func parseNumbers(values []string) ([]float64, error) {
	nums := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, Wrap(KindNotNumeric, err, "Node values are not numbers")
		}
		nums[i] = f
	}
	return nums, nil
}

func joinInts(idx []int) string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
