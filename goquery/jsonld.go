package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLD is one decoded JSON-LD node.
type jsonLD map[string]any

// jsonLDNodes decodes every application/ld+json script in the document,
// flattening arrays and @graph containers. Malformed scripts are skipped.
func jsonLDNodes(doc *goquery.Document) []jsonLD {
	var nodes []jsonLD
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}
		nodes = appendJSONLD(nodes, raw)
	})
	return nodes
}

func appendJSONLD(nodes []jsonLD, raw any) []jsonLD {
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			nodes = appendJSONLD(nodes, item)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			nodes = appendJSONLD(nodes, graph)
		}
		if _, ok := v["@type"]; ok {
			nodes = append(nodes, jsonLD(v))
		}
	}
	return nodes
}

// findJSONLD returns the first node whose @type is one of types.
func findJSONLD(nodes []jsonLD, types ...string) jsonLD {
	for _, node := range nodes {
		for _, t := range node.types() {
			for _, want := range types {
				if strings.EqualFold(t, want) {
					return node
				}
			}
		}
	}
	return nil
}

// types returns the node's @type as a list.
func (n jsonLD) types() []string {
	switch v := n["@type"].(type) {
	case string:
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// str returns a string property. Objects yield their "name" and lists
// their first string element.
func (n jsonLD) str(key string) string {
	return cleanText(stringValue(n[key]))
}

func stringValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
		if value, ok := v["value"]; ok {
			return stringValue(value)
		}
	case []any:
		for _, item := range v {
			if s := stringValue(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// node returns an object property as a node. A list yields its first object.
func (n jsonLD) node(key string) jsonLD {
	switch v := n[key].(type) {
	case map[string]any:
		return jsonLD(v)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				return jsonLD(m)
			}
		}
	}
	return nil
}

// nodes returns an object or list-of-objects property as nodes.
func (n jsonLD) nodes(key string) []jsonLD {
	switch v := n[key].(type) {
	case map[string]any:
		return []jsonLD{jsonLD(v)}
	case []any:
		var out []jsonLD
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, jsonLD(m))
			}
		}
		return out
	}
	return nil
}

// list returns a list-of-strings property; a single string is split on
// commas.
func (n jsonLD) list(key string) []string {
	var out []string
	switch v := n[key].(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if s := cleanText(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if s := cleanText(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// interaction returns the userInteractionCount of the interactionStatistic
// entry whose interactionType mentions action (e.g. "LikeAction").
// Returns -1 when absent.
func (n jsonLD) interaction(action string) int {
	for _, stat := range n.nodes("interactionStatistic") {
		kind := stringValue(stat["interactionType"])
		if kind == "" {
			if m, ok := stat["interactionType"].(map[string]any); ok {
				kind, _ = m["@type"].(string)
			}
		}
		if !strings.Contains(strings.ToLower(kind), strings.ToLower(action)) {
			continue
		}
		switch c := stat["userInteractionCount"].(type) {
		case float64:
			return int(c)
		case string:
			return parseCount(c)
		}
	}
	return -1
}
