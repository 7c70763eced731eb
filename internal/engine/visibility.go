package engine

// Resolve computes the applicable subset of an ordered question list given
// the answers recorded so far. It is a pure function and is re-run after
// every answer change.
//
// A single left-to-right pass maintains the set of IDs already decided
// visible. For each question the pass first checks whether any earlier
// answered question carries a skip directive whose range covers it, then
// evaluates the question's own dependency conditions against visible
// ancestors.
func Resolve(questions []Question, answers map[string]Answer, farmType FarmType) []Question {
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}

	visible := make(map[string]bool, len(questions))
	ctx := &evalContext{answers: answers, visible: visible}

	out := make([]Question, 0, len(questions))
	for i, q := range questions {
		if skipExcluded(questions, answers, index, farmType, i) {
			// Deliberately not added to the visible set: anything that
			// depends on a skipped question must go dark with it.
			continue
		}
		if !dependenciesHold(q, ctx) {
			continue
		}
		out = append(out, q)
		visible[q.ID] = true
	}
	return out
}

// skipExcluded reports whether question i falls inside the exclusive range
// of any fired skip directive on an earlier answered question. Directives on
// one question are consulted in declaration order and the first one whose
// trigger matches is authoritative for that question, even if its range does
// not cover i.
func skipExcluded(questions []Question, answers map[string]Answer, index map[string]int, farmType FarmType, i int) bool {
	for j := 0; j < i; j++ {
		trigger := questions[j]
		if len(trigger.Skips) == 0 {
			continue
		}
		a, ok := answers[trigger.ID]
		if !ok || a.IsZero() {
			continue
		}
		for _, d := range trigger.Skips {
			if !d.matches(a) {
				continue
			}
			target, ok := index[d.resolveTarget(farmType)]
			if ok && j < target && i > j && i < target {
				return true
			}
			break
		}
	}
	return false
}

// dependenciesHold evaluates every dependency condition on q (AND semantics)
// plus the parsed legacy expression if present. A condition referencing a
// question outside the visible set is unsatisfiable; a condition referencing
// a visible but unanswered question holds by default so that forward
// questions remain reachable before they are answered.
func dependenciesHold(q Question, ctx *evalContext) bool {
	for _, c := range q.Conditions {
		if !ctx.visible[c.Ref] {
			return false
		}
		a, ok := ctx.answers[c.Ref]
		if !ok || a.IsZero() {
			continue
		}
		match := a.Matches(c.Value)
		if c.Op == DepNotEquals {
			match = !match
		}
		if !match {
			return false
		}
	}
	if q.Condition != nil && !q.Condition.eval(ctx) {
		return false
	}
	return true
}
