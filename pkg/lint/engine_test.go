package lint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

const mixedDoc = "#Title\nSome text \nTODO: fix this\n##Again\t\n"

func TestEngineRunsChecksInFixedOrder(t *testing.T) {
	t.Parallel()

	eng, err := lint.NewEngine(config.RulesConfig{}, &locale.English)
	require.NoError(t, err)

	found := eng.Lint(mixedDoc)

	type key struct {
		ID   string
		Line int
	}
	var got []key
	for _, f := range found {
		got = append(got, key{f.RuleID, f.Line})
	}
	want := []key{
		{lint.HeadingSpaceID, 1},
		{lint.HeadingSpaceID, 4},
		{lint.TrailingWhitespaceID, 2},
		{lint.TrailingWhitespaceID, 4},
		{lint.TodoID, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineIsIdempotent(t *testing.T) {
	t.Parallel()

	eng, err := lint.NewEngine(config.RulesConfig{}, nil)
	require.NoError(t, err)

	first := eng.Lint(mixedDoc)
	second := eng.Lint(mixedDoc)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestEngineScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantIDs   []string
		wantLines []int
	}{
		{name: "heading without space", input: "#Title\n", wantIDs: []string{lint.HeadingSpaceID}, wantLines: []int{1}},
		{name: "heading with space", input: "# Title\n"},
		{name: "trailing whitespace", input: "Some text \nNext line\n", wantIDs: []string{lint.TrailingWhitespaceID}, wantLines: []int{1}},
		{name: "todo", input: "TODO: fix this\n", wantIDs: []string{lint.TodoID}, wantLines: []int{1}},
		{name: "empty document", input: ""},
	}

	eng, err := lint.NewEngine(config.RulesConfig{}, &locale.English)
	require.NoError(t, err)

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			found := eng.Lint(testCase.input)
			var ids []string
			for _, f := range found {
				ids = append(ids, f.RuleID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
			assert.Equal(t, testCase.wantLines, linesOf(found))
		})
	}
}

func TestEngineDisable(t *testing.T) {
	t.Parallel()

	eng, err := lint.NewEngine(config.RulesConfig{Disable: []string{"no-todo", "MDC002"}}, nil)
	require.NoError(t, err)

	require.Len(t, eng.Rules(), 1)
	assert.Equal(t, lint.HeadingSpaceID, eng.Rules()[0].ID())
	assert.Equal(t, []int{1, 4}, linesOf(eng.Lint(mixedDoc)))
}

func TestEngineRejectsUnknownRule(t *testing.T) {
	t.Parallel()

	_, err := lint.NewEngine(config.RulesConfig{Disable: []string{"MD999"}}, nil)
	require.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Contains(t, err.Error(), "MD999")
}

func TestEngineIgnoreCodeBlocks(t *testing.T) {
	t.Parallel()

	doc := "#Top\n\n```bash\n#!/bin/sh\n#comment \n```\n\n    #indented\n\nTODO\n"

	literal, err := lint.NewEngine(config.RulesConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 5, 8, 5, 10}, linesOf(literal.Lint(doc)))

	aware, err := lint.NewEngine(config.RulesConfig{IgnoreCodeBlocks: true}, nil)
	require.NoError(t, err)
	// Only heading findings are filtered; trailing whitespace and TODO remain.
	assert.Equal(t, []int{1, 5, 10}, linesOf(aware.Lint(doc)))
}

func TestCodeBlockLines(t *testing.T) {
	t.Parallel()

	doc := "text\n```go\nfmt.Println()\n\nx := 1\n```\n\n    indented\n"
	got := lint.CodeBlockLines([]byte(doc))

	assert.True(t, got[3])
	assert.True(t, got[5])
	assert.True(t, got[8])
	assert.False(t, got[1])
	assert.False(t, got[2])
	assert.Empty(t, lint.CodeBlockLines(nil))
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	reg := lint.DefaultRegistry()
	assert.Equal(t, 3, reg.Len())

	byID, ok := reg.Get("MDC003")
	require.True(t, ok)
	byName, ok := reg.Get("no-todo")
	require.True(t, ok)
	assert.Same(t, byID, byName)

	_, ok = reg.Get("nope")
	assert.False(t, ok)

	reg.Register(lint.NewTodoRule())
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, lint.TodoID, reg.Rules()[2].ID())
}
