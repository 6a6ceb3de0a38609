package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBasicOperators(t *testing.T) {
	ev := NewEvaluator()
	snap := map[string]bool{"A": true, "B": false}

	tests := []struct {
		rule string
		want bool
	}{
		{"A", true},
		{"B", false},
		{"A & B", false},
		{"A | B", true},
		{"A && B", false},
		{"A || B", true},
		{"A and B", false},
		{"A or B", true},
		{"!B", true},
		{"not B", true},
		{"(A | B) & A", true},
		{"true", true},
		{"false", false},
		{"1 & A", true},
		{"0 | B", false},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.want, ev.Evaluate(tt.rule, snap))
		})
	}
	assert.Zero(t, ev.Failures)
	assert.Zero(t, ev.MissingRefs)
}

func TestEvaluateNotWhitespace(t *testing.T) {
	ev := NewEvaluator()

	// The prefix NOT must parse identically with and without adjacent
	// whitespace; a blind text substitution of "!" breaks on "!X".
	assert.True(t, ev.Evaluate("!X", map[string]bool{"X": false}))
	assert.True(t, ev.Evaluate("! X", map[string]bool{"X": false}))
	assert.False(t, ev.Evaluate("!X", map[string]bool{"X": true}))
	assert.False(t, ev.Evaluate("! X", map[string]bool{"X": true}))

	snap := map[string]bool{"A": false, "B": false, "C": false, "D": false}
	assert.True(t, ev.Evaluate("(A|!B|C)&!D", snap))
	assert.True(t, ev.Evaluate("( A | ! B | C ) & ! D", snap))

	assert.True(t, ev.Evaluate("!!A", map[string]bool{"A": true}))
	assert.Zero(t, ev.Failures)
}

func TestEvaluateWholeWordIdentifiers(t *testing.T) {
	ev := NewEvaluator()

	// p53 inside p53I must not be corrupted by substitution.
	snap := map[string]bool{"p53": true, "p53I": false}
	assert.False(t, ev.Evaluate("p53I", snap))
	assert.True(t, ev.Evaluate("p53", snap))
	assert.True(t, ev.Evaluate("p53 & !p53I", snap))
}

func TestEvaluateMissingReference(t *testing.T) {
	ev := NewEvaluator()

	// Unknown names resolve to false and are counted.
	assert.False(t, ev.Evaluate("Ghost", map[string]bool{"A": true}))
	assert.Equal(t, 1, ev.MissingRefs)
	assert.Zero(t, ev.Failures)

	// false OR unknown is still false; true OR unknown is true.
	assert.False(t, ev.Evaluate("Ghost | B", map[string]bool{"B": false}))
	assert.True(t, ev.Evaluate("A | Ghost", map[string]bool{"A": true}))
	assert.Equal(t, 3, ev.MissingRefs)
}

func TestEvaluateMalformedRule(t *testing.T) {
	ev := NewEvaluator()
	snap := map[string]bool{"A": true}

	for _, rule := range []string{"A &", "((A)", "& A", "A B", "A @ B", ""} {
		assert.False(t, ev.Evaluate(rule, snap), "rule %q", rule)
	}
	assert.Equal(t, 6, ev.Failures)

	// Bad rules stay bad and keep counting, without being re-parsed.
	assert.False(t, ev.Evaluate("A &", snap))
	assert.Equal(t, 7, ev.Failures)

	ev.Reset()
	assert.Zero(t, ev.Failures)
}

func TestCompilePrecedence(t *testing.T) {
	ev := NewEvaluator()

	// AND binds tighter than OR: A | B & C == A | (B & C).
	snap := map[string]bool{"A": true, "B": false, "C": false}
	assert.True(t, ev.Evaluate("A | B & C", snap))

	snap = map[string]bool{"A": false, "B": true, "C": false}
	assert.False(t, ev.Evaluate("A | B & C", snap))

	// NOT binds tighter than AND: !A & B == (!A) & B.
	snap = map[string]bool{"A": false, "B": true}
	assert.True(t, ev.Evaluate("!A & B", snap))
}

func TestDeps(t *testing.T) {
	deps := Deps("(A|!B|C)&!D & A")
	require.Equal(t, []string{"A", "B", "C", "D"}, deps)

	assert.Nil(t, Deps("A &"))
	assert.Empty(t, Deps("true & false"))
}

func TestCompileErrors(t *testing.T) {
	for _, rule := range []string{"", "A |", "not", "(A", "A)"} {
		_, err := Compile(rule)
		require.Error(t, err, "rule %q", rule)
	}
}
