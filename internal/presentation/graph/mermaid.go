package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	Initial string
	Current string
}

// defaultNode stands for "any state" as the source of the default rule.
const defaultNode = "any_state"

type edge struct {
	kind     domain.RuleKind
	from, to string
}

// GenerateMermaid produces a Mermaid flowchart from a registry description.
// Exact rules sharing source and target collapse into one edge labelled with
// all their symbols. Wildcard rules are dotted and labelled "*"; the default
// rule hangs off a synthetic "*" node. The initial state is drawn as a circle.
func GenerateMermaid(rules []domain.TransitionInfo, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var states []string
	seen := make(map[string]bool)
	addState := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	if overlay != nil {
		addState(overlay.Initial)
	}

	var order []edge
	labels := make(map[edge][]string)
	for _, r := range rules {
		addState(r.State)
		addState(r.Next)
		e := edge{kind: r.Kind, from: r.State, to: r.Next}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], r.Symbol)
	}
	slices.Sort(states)

	for _, s := range states {
		opener, closer := "[", "]"
		if overlay != nil && s == overlay.Initial {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(s), opener, escape(s), closer)
	}

	for _, e := range order {
		to := sanitizeMermaidID(e.to)
		switch e.kind {
		case domain.RuleExact:
			label := escape(strings.Join(labels[e], " "))
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), label, to)
		case domain.RuleAny:
			fmt.Fprintf(&sb, "    %s -. \"*\" .-> %s\n", sanitizeMermaidID(e.from), to)
		case domain.RuleDefault:
			fmt.Fprintf(&sb, "    %s((\"*\")) -. \"default\" .-> %s\n", defaultNode, to)
		}
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
	}

	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "#quot;")
}

// sanitizeMermaidID keeps letters, digits and underscores. "end" is a
// reserved word in flowcharts and gets a suffix.
func sanitizeMermaidID(id string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}
