package graph

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/c360/memberhub/errors"
)

// DefaultMaxDepth is the query nesting limit applied when none is configured
const DefaultMaxDepth = 6

// CheckDepth parses the query document and rejects it when any operation's
// selection-set nesting exceeds limit. The check is purely structural and
// runs before execution; on violation no resolver is ever invoked.
func CheckDepth(query string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxDepth
	}

	doc, parseErr := parser.ParseQuery(&ast.Source{Name: "request", Input: query})
	if parseErr != nil {
		return errors.WrapInvalid(parseErr, "DepthGuard", "CheckDepth", "query parse")
	}

	fragments := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, frag := range doc.Fragments {
		fragments[frag.Name] = frag
	}

	for _, op := range doc.Operations {
		depth := selectionDepth(op.SelectionSet, fragments, make(map[string]bool))
		if depth > limit {
			return errors.WrapInvalid(
				fmt.Errorf("%w: depth %d exceeds limit %d", errors.ErrDepthExceeded, depth, limit),
				"DepthGuard", "CheckDepth", "depth validation")
		}
	}
	return nil
}

// selectionDepth returns the maximum field nesting of a selection set.
// Fields add one level; inline fragments and fragment spreads are
// transparent. Spreads are resolved against the document's fragment
// definitions with a visited set guarding against spread cycles.
func selectionDepth(set ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, visited map[string]bool) int {
	maxDepth := 0
	for _, sel := range set {
		depth := 0
		switch s := sel.(type) {
		case *ast.Field:
			depth = 1 + selectionDepth(s.SelectionSet, fragments, visited)
		case *ast.InlineFragment:
			depth = selectionDepth(s.SelectionSet, fragments, visited)
		case *ast.FragmentSpread:
			if frag, ok := fragments[s.Name]; ok && !visited[s.Name] {
				visited[s.Name] = true
				depth = selectionDepth(frag.SelectionSet, fragments, visited)
				delete(visited, s.Name)
			}
		}
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	return maxDepth
}
