// Package parser splits content files into YAML frontmatter and Markdown body.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Title       string
	Summary     string
}

// Parse extracts frontmatter, body, title and summary from raw Markdown bytes.
// Invalid frontmatter is not an error; the whole file is then body.
func Parse(data []byte) (*Result, error) {
	block, body, ok := splitFrontmatter(data)
	var fm map[string]interface{}
	if ok {
		if err := yaml.Unmarshal(block, &fm); err != nil {
			fm = nil
			body = string(data)
		}
	}
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Summary:     summary(body),
	}, nil
}

// Decode unmarshals the frontmatter of data into v and returns the body.
// Unlike Parse, malformed frontmatter is an error.
func Decode(data []byte, v any) (string, error) {
	block, body, ok := splitFrontmatter(data)
	if !ok {
		return body, nil
	}
	if err := yaml.Unmarshal(block, v); err != nil {
		return "", fmt.Errorf("parser: frontmatter: %w", err)
	}
	return body, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. ok is false when there is no frontmatter block.
func splitFrontmatter(data []byte) (block []byte, body string, ok bool) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), false
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: everything is body.
		return nil, string(data), false
	}

	afterDelim := rest[idx+1+len(delim):]
	return rest[:idx], strings.TrimLeft(string(afterDelim), "\n\r"), true
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// summary returns the first paragraph of body that is not a heading,
// joined onto one line.
func summary(body string) string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if len(lines) > 0 {
				return strings.Join(lines, " ")
			}
		case strings.HasPrefix(trimmed, "#"):
			if len(lines) > 0 {
				return strings.Join(lines, " ")
			}
		default:
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, " ")
}
