package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corymhall/tsedit/text"
)

func TestTriggerPolicy(t *testing.T) {
	policy := NewTriggerPolicy([]string{".", "\""})

	tests := []struct {
		name      string
		line      string
		col       int
		decision  TriggerDecision
		prefix    string
		isTrigger bool
	}{
		{name: "empty line", line: "", col: 0, decision: TriggerSuppressed},
		{name: "line start", line: "foo", col: 0, decision: TriggerSuppressed},
		{name: "one char prefix", line: "f", col: 1, decision: TriggerSuppressed, prefix: "f"},
		{name: "two char prefix", line: "fo", col: 2, decision: TriggerPending, prefix: "fo"},
		{name: "underscore prefix", line: "_x", col: 2, decision: TriggerPending, prefix: "_x"},
		{name: "trigger char", line: "foo.", col: 4, decision: TriggerPending, prefix: "", isTrigger: true},
		{name: "trigger after one char", line: "f.", col: 2, decision: TriggerPending, prefix: "", isTrigger: true},
		{name: "after space", line: "let ", col: 4, decision: TriggerSuppressed},
		{name: "after paren", line: "foo(", col: 4, decision: TriggerSuppressed},
		{name: "mid word", line: "foobar", col: 3, decision: TriggerPending, prefix: "foo"},
		{name: "unicode prefix", line: "héllo", col: 2, decision: TriggerPending, prefix: "hé"},
		{name: "single unicode char", line: "é", col: 1, decision: TriggerSuppressed, prefix: "é"},
		{name: "col past end clamps", line: "fo", col: 10, decision: TriggerPending, prefix: "fo"},
		{name: "prefix stops at dot", line: "a.fo", col: 4, decision: TriggerPending, prefix: "fo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, prefix, isTrigger := policy.Evaluate(tt.line, tt.col)
			require.Equal(t, tt.decision, decision)
			require.Equal(t, tt.prefix, prefix)
			require.Equal(t, tt.isTrigger, isTrigger)
		})
	}
}

func TestTriggerPolicyNoTriggerChars(t *testing.T) {
	policy := NewTriggerPolicy(nil)
	decision, _, isTrigger := policy.Evaluate("foo.", 4)
	require.Equal(t, TriggerSuppressed, decision)
	require.False(t, isTrigger)
}

func TestTriggerPolicyEvaluateAt(t *testing.T) {
	policy := NewTriggerPolicy([]string{"."})
	rope := text.NewRope("ab\nconsole.")
	// Col 7 sits after the final e; col 8 sits after the trigger dot.
	decision, prefix, isTrigger := policy.EvaluateAt(rope, text.Loc{Row: 1, Col: 7})
	require.Equal(t, TriggerPending, decision)
	require.Equal(t, "console", prefix)
	require.False(t, isTrigger)

	decision, prefix, isTrigger = policy.EvaluateAt(rope, text.Loc{Row: 1, Col: 8})
	require.Equal(t, TriggerPending, decision)
	require.Equal(t, "", prefix)
	require.True(t, isTrigger)
}
