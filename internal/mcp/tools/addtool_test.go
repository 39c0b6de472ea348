package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type rawInner struct {
	Schema json.RawMessage `json:"schema,omitempty"`
}

func TestCheckOutputSchema(t *testing.T) {
	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{"nil slice without omitzero", func() {
			CheckOutputSchema[struct {
				Items []string `json:"items"`
			}]("bad_slice")
		}, true},
		{"slice with omitzero", func() {
			CheckOutputSchema[struct {
				Items []string `json:"items,omitzero"`
			}]("good_slice")
		}, false},
		{"slice with omitempty", func() {
			CheckOutputSchema[struct {
				Items []int `json:"items,omitempty"`
			}]("good_slice_omitempty")
		}, false},
		{"scalars only", func() {
			CheckOutputSchema[struct {
				Status string `json:"status"`
				Code   int    `json:"code"`
			}]("scalars")
		}, false},
		{"untyped any", func() { CheckOutputSchema[any]("any") }, false},
		{"pointer to slice", func() {
			CheckOutputSchema[struct {
				Items *[]string `json:"items"`
			}]("ptr_slice")
		}, false},
		{"raw message", func() {
			CheckOutputSchema[struct {
				Data json.RawMessage `json:"data,omitempty"`
			}]("raw")
		}, true},
		{"raw message slice", func() {
			CheckOutputSchema[struct {
				Items []json.RawMessage `json:"items,omitzero"`
			}]("raw_slice")
		}, true},
		{"nested raw message", func() {
			CheckOutputSchema[struct {
				Nested rawInner `json:"nested"`
			}]("raw_nested")
		}, true},
		{"check output", func() { CheckOutputSchema[CheckOutput]("xml_check") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}
