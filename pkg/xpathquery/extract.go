// Package xpathquery extracts node values from XML documents with XPath
// expressions.
package xpathquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"

	"github.com/usestring/xmlprobe/pkg/contenttype"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// Values holds the text content of matched nodes in document order. A
// successful extraction never returns an empty Values.
type Values []string

// Scalar reports whether exactly one node matched.
func (v Values) Scalar() bool {
	return len(v) == 1
}

// Defined reports whether any matched node carries non-empty text.
func (v Values) Defined() bool {
	for _, s := range v {
		if s != "" {
			return true
		}
	}
	return false
}

// Extract parses body and returns the text of every node matching expression.
// Documents served as HTML are parsed with htmlquery, everything else as XML.
//
// Failures are *evaluate.Error values: MalformedDocument when the body does
// not parse, InvalidPath when the expression does not compile and
// NoMatchingNode when nothing matches.
func Extract(body []byte, contentType, expression string) (Values, error) {
	if contenttype.Classify(contentType) == contenttype.HTML {
		return extractHTML(body, expression)
	}
	return extractXML(body, expression)
}

// Exists reports whether body parses and has a root element. It is the check
// performed when no expression is given.
func Exists(body []byte, contentType string) (bool, error) {
	if contenttype.Classify(contentType) == contenttype.HTML {
		doc, err := parseHTML(body)
		if err != nil {
			return false, err
		}
		for n := doc.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == html.ElementNode {
				return true, nil
			}
		}
		return false, noRoot()
	}

	doc, err := parseXML(body)
	if err != nil {
		return false, err
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return true, nil
		}
	}
	return false, noRoot()
}

func extractXML(body []byte, expression string) (Values, error) {
	doc, err := parseXML(body)
	if err != nil {
		return nil, err
	}

	nodes, err := xmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, invalidPath(expression, err)
	}
	if len(nodes) == 0 {
		return nil, noMatch(expression)
	}

	values := make(Values, 0, len(nodes))
	for _, node := range nodes {
		values = append(values, strings.TrimSpace(node.InnerText()))
	}
	return values, nil
}

func extractHTML(body []byte, expression string) (Values, error) {
	doc, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	nodes, err := htmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, invalidPath(expression, err)
	}
	if len(nodes) == 0 {
		return nil, noMatch(expression)
	}

	values := make(Values, 0, len(nodes))
	for _, node := range nodes {
		values = append(values, strings.TrimSpace(htmlquery.InnerText(node)))
	}
	return values, nil
}

func parseXML(body []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, evaluate.Wrap(evaluate.KindMalformedDocument, err,
			fmt.Sprintf("Unable to parse xml: %v", err))
	}
	return doc, nil
}

func parseHTML(body []byte) (*html.Node, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, evaluate.Wrap(evaluate.KindMalformedDocument, err,
			fmt.Sprintf("Unable to parse html: %v", err))
	}
	return doc, nil
}

func noRoot() error {
	return evaluate.Errorf(evaluate.KindMalformedDocument, "Unable to parse xml: document has no root element")
}

func noMatch(expression string) error {
	return evaluate.Errorf(evaluate.KindNoMatchingNode, "Unable to find element with XPath %s", expression)
}

func invalidPath(expression string, err error) error {
	return evaluate.Wrap(evaluate.KindInvalidPath, err,
		fmt.Sprintf("Invalid XPath %s: %v", expression, err))
}
