package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{Name: "index.html", Content: "<h1>Hello</h1>\n<button id=\"go\">Go</button>"},
		{Name: "styles.css", Content: "body {\n  color: green;\n}\nbutton { color: red; }"},
		{Name: "script.js", Content: "document.getElementById('go');", Hidden: true},
	}
}

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name    string
		input   string
		want    []Condition
		logic   []Operator
		wantErr bool
	}{
		{
			name:  "bare word",
			input: "button",
			want:  []Condition{{Field: FieldContent, Value: "button"}},
		},
		{
			name:  "fields default to AND",
			input: `role:css "color: red"`,
			want:  []Condition{{Field: FieldRole, Value: "css"}, {Field: FieldContent, Value: "color: red"}},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "OR and NOT",
			input: "name:index OR NOT is:hidden",
			want:  []Condition{{Field: FieldName, Value: "index"}, {Field: FieldHidden, Value: "true", Negate: true}},
			logic: []Operator{OperatorOR},
		},
		{
			name:  "dash negation",
			input: "-role:js",
			want:  []Condition{{Field: FieldRole, Value: "js", Negate: true}},
		},
		{
			name:  "dash negation keeps AND",
			input: "-is:hidden go",
			want:  []Condition{{Field: FieldHidden, Value: "true", Negate: true}, {Field: FieldContent, Value: "go"}},
			logic: []Operator{OperatorAND},
		},
		{
			name:  "NOT of a dash term",
			input: "NOT -role:js",
			want:  []Condition{{Field: FieldRole, Value: "js"}},
		},
		{name: "unknown field", input: "tag:x", wantErr: true},
		{name: "leading operator", input: "OR x", wantErr: true},
		{name: "trailing operator", input: "x AND", wantErr: true},
		{name: "dangling NOT", input: "x NOT", wantErr: true},
		{name: "bad hidden value", input: "hidden:maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := p.Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Conditions)
			assert.Equal(t, tt.logic, q.Logic)
		})
	}
}

func TestEngine_Search(t *testing.T) {
	e := NewEngine(testItems())

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"index.html", "styles.css", "script.js"}},
		{"button", []string{"index.html", "styles.css"}},
		{"role:css", []string{"styles.css"}},
		{"role:js OR role:html", []string{"index.html", "script.js"}},
		{"is:hidden", []string{"script.js"}},
		{"-is:hidden go", []string{"index.html"}},
		{"-role:js", []string{"index.html", "styles.css"}},
		{"NOT -role:js", []string{"script.js"}},
		{"button -name:index", []string{"styles.css"}},
		{`"color: red"`, []string{"styles.css"}},
		{"name:STYLES", []string{"styles.css"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := e.Search(tt.query)
			require.NoError(t, err)
			var got []string
			for _, r := range results {
				got = append(got, r.Name)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEngine_ScoreAndLines(t *testing.T) {
	e := NewEngine(testItems())

	results, err := e.Search("color")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "stylesheet", results[0].Role)
	assert.Equal(t, []LineMatch{{Number: 2, Text: "color: green;"}, {Number: 4, Text: "button { color: red; }"}}, results[0].Lines)

	results, err = e.Search("name:index OR button")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "index.html", results[0].Name, "name matches rank first")

	_, err = e.Search("AND")
	assert.Error(t, err)
}
