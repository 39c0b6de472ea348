// Package shape summarizes the structure of XML documents so check authors can
// see which element paths exist before writing an XPath.
package shape

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Defaults for ExtractOutline limits.
const (
	DefaultMaxDepth = 8
	DefaultMaxPaths = 200
	maxSampleLen    = 80
)

// PathInfo describes one distinct element path.
type PathInfo struct {
	XPath      string   `json:"xpath"`
	Count      int      `json:"count"`
	Attributes []string `json:"attributes,omitzero"`
	// Leaf is set when at least one occurrence has no child elements.
	Leaf bool `json:"leaf"`
	// Sample is the first non-empty text of a leaf occurrence.
	Sample string `json:"sample,omitempty"`
}

// Outline lists the element paths of a document in first-seen order.
type Outline struct {
	Paths     []PathInfo `json:"paths,omitzero"`
	MaxDepth  int        `json:"max_depth"`
	Truncated bool       `json:"truncated,omitempty"`
}

type frame struct {
	path     string
	hasChild bool
	text     strings.Builder
}

// ExtractOutline streams body and collects every distinct element path up to
// maxDepth levels deep. Once maxPaths paths are known, new paths are skipped
// and the outline is marked truncated. Non-positive limits use the defaults.
func ExtractOutline(body []byte, maxDepth, maxPaths int) (*Outline, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.Strict = false

	out := &Outline{}
	index := make(map[string]int)
	var stack []*frame

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.hasChild = true
				parent = top.path
			}
			path := parent + "/" + stripNamespace(t.Name)
			depth := len(stack) + 1

			i, known := index[path]
			if depth > maxDepth || (!known && len(out.Paths) >= maxPaths) {
				out.Truncated = true
				if err := decoder.Skip(); err != nil {
					return nil, fmt.Errorf("parsing xml: %w", err)
				}
				continue
			}
			if !known {
				i = len(out.Paths)
				index[path] = i
				out.Paths = append(out.Paths, PathInfo{XPath: path})
			}

			info := &out.Paths[i]
			info.Count++
			for _, attr := range t.Attr {
				name := stripNamespace(attr.Name)
				if !slices.Contains(info.Attributes, name) {
					info.Attributes = append(info.Attributes, name)
				}
			}
			if depth > out.MaxDepth {
				out.MaxDepth = depth
			}
			stack = append(stack, &frame{path: path})

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.text.Len() < maxSampleLen {
					top.text.Write(t)
				}
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.hasChild {
				continue
			}
			info := &out.Paths[index[top.path]]
			info.Leaf = true
			if info.Sample == "" {
				info.Sample = sample(top.text.String())
			}
		}
	}

	if len(out.Paths) == 0 {
		return nil, errors.New("parsing xml: document has no root element")
	}
	return out, nil
}

func sample(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > maxSampleLen {
		s = s[:maxSampleLen]
	}
	return s
}

// stripNamespace returns the local part of an XML name, keeping a prefix
// only when the namespace is not a URL.
func stripNamespace(name xml.Name) string {
	if name.Space != "" {
		if !strings.HasPrefix(name.Space, "http://") && !strings.HasPrefix(name.Space, "https://") {
			return name.Space + ":" + name.Local
		}
	}
	return name.Local
}
