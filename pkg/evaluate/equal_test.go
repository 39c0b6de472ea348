package evaluate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEqual(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		target    string
		status    Status
		message   string
		offending []int
	}{
		{
			name:    "all equal",
			values:  []string{"up", "up", "up", "up"},
			target:  "up",
			status:  StatusOK,
			message: "All the node(s) values equal to 'up'",
		},
		{
			name:    "single equal",
			values:  []string{"test"},
			target:  "test",
			status:  StatusOK,
			message: "All the node(s) values equal to 'test'",
		},
		{
			name:      "some equal",
			values:    []string{"up", "down", "up", "up"},
			target:    "up",
			status:    StatusWarning,
			message:   "Not all nodes' values equal to 'up'",
			offending: []int{1},
		},
		{
			name:      "none equal",
			values:    []string{"up", "up", "up", "up"},
			target:    "yes",
			status:    StatusCritical,
			message:   "None of the nodes' values equal to 'yes'",
			offending: []int{0, 1, 2, 3},
		},
		{
			name:      "single not equal",
			values:    []string{"test"},
			target:    "something",
			status:    StatusCritical,
			message:   "Node value not equal to 'something'",
			offending: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := CheckEqual(tt.values, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.status, v.Status)
			assert.Equal(t, tt.message, v.Message)
			if tt.offending == nil {
				assert.Empty(t, v.Offending)
			} else {
				assert.Equal(t, tt.offending, v.Offending)
			}
		})
	}
}

func TestEvaluators_RejectEmptyValues(t *testing.T) {
	now := time.Date(2022, 8, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		eval func() (Verdict, error)
	}{
		{"equal", func() (Verdict, error) { return CheckEqual(nil, "up") }},
		{"range", func() (Verdict, error) { return CheckRange([]string{}, "50", SeverityWarning) }},
		{"age", func() (Verdict, error) { return CheckAge(nil, 3, TimeFormatUnix, now) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.eval()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, "No node values to evaluate", err.Error())
			assert.Zero(t, v)
		})
	}

	// a bad threshold is still reported before the empty values
	_, err := CheckRange(nil, "x50", SeverityCritical)
	assert.ErrorIs(t, err, ErrInvalidRangeFormat)
}
