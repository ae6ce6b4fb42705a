// Package validator checks transition tables for states no input can reach.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// ValidateGraph walks the rules from initial and reports unreachable states,
// and an initial state that accepts no input at all.
// Sink states are fine: a machine may stop accepting input on purpose.
func ValidateGraph(rules []domain.TransitionInfo, initial string) error {
	edges := make(map[string][]string)
	states := map[string]bool{initial: true}
	var fallback string
	hasDefault := false

	for _, r := range rules {
		states[r.Next] = true
		if r.Kind == domain.RuleDefault {
			fallback, hasDefault = r.Next, true
			continue
		}
		states[r.State] = true
		edges[r.State] = append(edges[r.State], r.Next)
	}

	var errs []string
	if len(edges[initial]) == 0 && !hasDefault {
		errs = append(errs, fmt.Sprintf("initial state '%s' has no transitions", initial))
	}

	visited := make(map[string]bool)
	queue := []string{initial}
	if hasDefault {
		// Any state falls back to the default target.
		queue = append(queue, fallback)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, next := range edges[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for s := range states {
		if !visited[s] {
			unreachable = append(unreachable, s)
		}
	}
	sort.Strings(unreachable)
	for _, s := range unreachable {
		errs = append(errs, fmt.Sprintf("unreachable state: '%s'", s))
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
