package search

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType represents the part of a file a condition looks at
type FieldType string

const (
	FieldName    FieldType = "name"
	FieldRole    FieldType = "role"
	FieldContent FieldType = "content"
	FieldHidden  FieldType = "hidden"
)

// Operator joins conditions
type Operator string

const (
	OperatorAND Operator = "AND"
	OperatorOR  Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field  FieldType
	Value  string
	Negate bool
}

// Query represents a parsed search query. Logic holds the operator between
// each pair of neighbouring conditions.
type Query struct {
	Conditions []Condition
	Logic      []Operator
	Raw        string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a query such as `role:css "font-family" OR name:index`.
// Bare words search file content; neighbouring conditions default to AND.
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{Raw: input}
	tokens := p.tokenize(input)

	negate := false
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 || len(query.Logic) == len(query.Conditions) {
				return nil, fmt.Errorf("unexpected operator %s", token)
			}
			query.Logic = append(query.Logic, Operator(strings.ToUpper(token)))
			continue
		case "NOT":
			if i == len(tokens)-1 {
				return nil, fmt.Errorf("NOT operator requires a condition")
			}
			negate = true
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return nil, err
		}
		// NOT applied to a -term cancels out.
		cond.Negate = cond.Negate != negate
		negate = false

		if len(query.Conditions) > len(query.Logic) {
			query.Logic = append(query.Logic, OperatorAND)
		}
		query.Conditions = append(query.Conditions, cond)
	}

	if len(query.Logic) >= len(query.Conditions) && len(query.Logic) > 0 {
		return nil, fmt.Errorf("query ends with an operator")
	}
	return query, nil
}

// tokenize splits the input on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func (p *Parser) parseCondition(token string) (Condition, error) {
	if strings.HasPrefix(token, "-") && len(token) > 1 {
		cond, err := p.parseCondition(token[1:])
		cond.Negate = true
		return cond, err
	}

	matches := p.fieldPattern.FindStringSubmatch(token)
	if matches == nil {
		return Condition{Field: FieldContent, Value: p.unquote(token)}, nil
	}

	value := p.unquote(matches[2])
	switch field := strings.ToLower(matches[1]); field {
	case "name":
		return Condition{Field: FieldName, Value: value}, nil
	case "role", "type":
		return Condition{Field: FieldRole, Value: value}, nil
	case "content":
		return Condition{Field: FieldContent, Value: value}, nil
	case "hidden", "is":
		if field == "is" {
			if value != "hidden" {
				return Condition{}, fmt.Errorf("unknown state: %s", value)
			}
			value = "true"
		}
		if value != "true" && value != "false" {
			return Condition{}, fmt.Errorf("hidden must be true or false, got %s", value)
		}
		return Condition{Field: FieldHidden, Value: value}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", field)
	}
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
