package editor

import (
	"unicode"

	"github.com/corymhall/tsedit/text"
)

// TriggerDecision is the outcome of evaluating a keystroke against the
// completion gating rules.
type TriggerDecision int

const (
	// TriggerSuppressed - no request; any displayed completion list is
	// cleared.
	TriggerSuppressed TriggerDecision = iota
	// TriggerPending - issue one completion request for the current cursor.
	TriggerPending
)

// TriggerPolicy decides, per keystroke, whether typing at the current
// cursor warrants a remote completion request. A request is warranted when
// the character immediately before the cursor is an identifier character or
// a declared trigger character, and either it is a trigger character or the
// identifier prefix ending at the cursor is at least two characters long.
type TriggerPolicy struct {
	triggers []string
}

func NewTriggerPolicy(triggerCharacters []string) *TriggerPolicy {
	return &TriggerPolicy{triggers: triggerCharacters}
}

// Evaluate inspects the line content left of the cursor column. It returns
// the decision, the identifier prefix ending at the cursor, and whether the
// preceding character is a declared trigger character.
func (p *TriggerPolicy) Evaluate(line string, col int) (TriggerDecision, string, bool) {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	if col == 0 {
		return TriggerSuppressed, "", false
	}
	last := runes[col-1]
	trigger := p.isTrigger(last)
	if !trigger && !isWordRune(last) {
		return TriggerSuppressed, "", false
	}
	prefix := wordPrefix(runes, col)
	if trigger || len([]rune(prefix)) >= 2 {
		return TriggerPending, prefix, trigger
	}
	return TriggerSuppressed, prefix, false
}

// EvaluateAt is Evaluate against a rope location.
func (p *TriggerPolicy) EvaluateAt(rope *text.Rope, loc text.Loc) (TriggerDecision, string, bool) {
	return p.Evaluate(rope.Line(loc.Row), loc.Col)
}

func (p *TriggerPolicy) isTrigger(r rune) bool {
	for _, t := range p.triggers {
		if t == string(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordPrefix walks back from col over identifier characters and returns the
// contiguous run ending at the cursor.
func wordPrefix(runes []rune, col int) string {
	start := col
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	return string(runes[start:col])
}
