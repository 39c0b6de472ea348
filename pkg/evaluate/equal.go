package evaluate

import "fmt"

// CheckEqual compares every value against target.
//
// All equal is OK, none equal is CRITICAL and a mix is WARNING. An empty
// values slice is an InvalidInput error.
func CheckEqual(values []string, target string) (Verdict, error) {
	if err := requireValues(values); err != nil {
		return Verdict{}, err
	}

	bad := newOffenders()
	for i, v := range values {
		if v != target {
			bad.add(i)
		}
	}

	switch bad.reduce(len(values)) {
	case reduceNone:
		return pass(fmt.Sprintf("All the node(s) values equal to '%s'", target)), nil
	case reduceAll:
		msg := fmt.Sprintf("None of the nodes' values equal to '%s'", target)
		if len(values) == 1 {
			msg = fmt.Sprintf("Node value not equal to '%s'", target)
		}
		return Verdict{Status: StatusCritical, Message: msg, Offending: bad.indices()}, nil
	default:
		return Verdict{
			Status:    StatusWarning,
			Message:   fmt.Sprintf("Not all nodes' values equal to '%s'", target),
			Offending: bad.indices(),
		}, nil
	}
}

// requireValues rejects an empty extraction; there is nothing to judge.
func requireValues(values []string) error {
	if len(values) == 0 {
		return Errorf(KindInvalidInput, "No node values to evaluate")
	}
	return nil
}
