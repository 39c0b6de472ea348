// Package evaluate reduces values extracted from a document into a single
// health verdict.
//
// Each check classifies every value on its own (equal or not, inside or
// outside a range, younger or older than an age) and then reduces the
// classifications with an all/some/none policy. Failures that prevent a
// verdict are returned as *Error values rather than verdicts.
package evaluate

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Verdict is the aggregate outcome of one check.
type Verdict struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	// Offending lists the indices of values that caused a non-OK status, in
	// ascending order.
	Offending []int `json:"offending,omitzero"`
}

// Passed reports whether the verdict is OK.
func (v Verdict) Passed() bool {
	return v.Status == StatusOK
}

func pass(message string) Verdict {
	return Verdict{Status: StatusOK, Message: message}
}

// offenders collects the indices of values that failed classification.
type offenders struct {
	bm *roaring.Bitmap
}

func newOffenders() *offenders {
	return &offenders{bm: roaring.New()}
}

func (o *offenders) add(i int) {
	o.bm.Add(uint32(i))
}

func (o *offenders) count() int {
	return int(o.bm.GetCardinality())
}

// indices returns the collected indices in ascending order.
func (o *offenders) indices() []int {
	out := make([]int, 0, o.count())
	it := o.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// reduce applies the all/some/none policy to n classified values.
type reduction int

const (
	reduceNone reduction = iota
	reduceSome
	reduceAll
)

func (o *offenders) reduce(n int) reduction {
	switch c := o.count(); {
	case c == 0:
		return reduceNone
	case c == n:
		return reduceAll
	default:
		return reduceSome
	}
}
