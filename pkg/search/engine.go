// Package search finds workspace files by name, role, hidden state and
// content using a small query language.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pagesmith/pagesmith-cli/pkg/models"
)

// Item is one searchable file
type Item struct {
	Name    string
	Content string
	Hidden  bool
}

// LineMatch is a content line that matched a bare or content: term
type LineMatch struct {
	Number int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
}

// Result is a matching file with its relevance score
type Result struct {
	Name   string      `json:"name" yaml:"name"`
	Role   string      `json:"role" yaml:"role"`
	Hidden bool        `json:"hidden" yaml:"hidden"`
	Score  float64     `json:"score" yaml:"score"`
	Lines  []LineMatch `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// Engine evaluates queries against a set of files
type Engine struct {
	parser *Parser
	items  []Item
}

func NewEngine(items []Item) *Engine {
	return &Engine{parser: NewParser(), items: items}
}

// Search returns the files matching query, best match first. An empty query
// matches every file.
func (e *Engine) Search(queryStr string) ([]Result, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	results := []Result{}
	for i, item := range e.items {
		if !e.matches(item, query) {
			continue
		}
		results = append(results, e.result(item, query, i))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// matches folds the conditions left to right with their operators.
func (e *Engine) matches(item Item, q *Query) bool {
	if len(q.Conditions) == 0 {
		return true
	}
	ok := evaluate(item, q.Conditions[0])
	for i, cond := range q.Conditions[1:] {
		switch q.Logic[i] {
		case OperatorOR:
			ok = ok || evaluate(item, cond)
		default:
			ok = ok && evaluate(item, cond)
		}
	}
	return ok
}

func evaluate(item Item, cond Condition) bool {
	value := strings.ToLower(cond.Value)
	var ok bool
	switch cond.Field {
	case FieldName:
		ok = strings.Contains(strings.ToLower(item.Name), value)
	case FieldRole:
		ok = roleMatches(item.Name, value)
	case FieldContent:
		ok = strings.Contains(strings.ToLower(item.Content), value)
	case FieldHidden:
		ok = item.Hidden == (value == "true")
	}
	if cond.Negate {
		return !ok
	}
	return ok
}

// roleMatches accepts role names and their common aliases.
func roleMatches(name, value string) bool {
	role := models.RoleOf(name)
	switch value {
	case "css", "style", "stylesheet":
		return role == models.RoleStylesheet
	case "js", "script", "javascript":
		return role == models.RoleScript
	case "html", "markup":
		return role == models.RoleMarkup
	}
	return role.String() == value
}

// result scores a match: name hits weigh more than content hits, and earlier
// files win ties.
func (e *Engine) result(item Item, q *Query, index int) Result {
	r := Result{
		Name:   item.Name,
		Role:   models.RoleOf(item.Name).String(),
		Hidden: item.Hidden,
	}

	var terms []string
	for _, c := range q.Conditions {
		if c.Negate {
			continue
		}
		switch c.Field {
		case FieldName:
			if strings.Contains(strings.ToLower(item.Name), strings.ToLower(c.Value)) {
				r.Score += 3
			}
		case FieldContent:
			terms = append(terms, strings.ToLower(c.Value))
		}
	}

	for i, line := range strings.Split(item.Content, "\n") {
		lower := strings.ToLower(line)
		hit := false
		for _, t := range terms {
			if n := strings.Count(lower, t); n > 0 && t != "" {
				r.Score += float64(n)
				hit = true
			}
		}
		if hit {
			r.Lines = append(r.Lines, LineMatch{Number: i + 1, Text: strings.TrimSpace(line)})
		}
	}

	r.Score -= float64(index) / 1000
	return r
}
