package depgraph

import (
	"context"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TreeSitterScanner extracts references from a syntax tree, so imports inside
// comments and string literals are ignored. Files whose extension has no
// grammar, or that fail to parse, fall back to RegexScanner.
type TreeSitterScanner struct {
	fallback RegexScanner
}

// NewTreeSitterScanner returns a TreeSitterScanner.
func NewTreeSitterScanner() *TreeSitterScanner {
	return &TreeSitterScanner{}
}

func languageFor(name string) *sitter.Language {
	switch strings.ToLower(path.Ext(name)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	}
	return nil
}

// Scan implements Scanner.
func (s *TreeSitterScanner) Scan(ctx context.Context, name string, src []byte) ([]string, error) {
	lang := languageFor(name)
	if lang == nil {
		return s.fallback.Scan(ctx, name, src)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return s.fallback.Scan(ctx, name, src)
	}
	defer tree.Close()

	var refs []string
	// Pre-order walk with an explicit stack; children are pushed in reverse
	// so they pop in source order.
	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if ref, ok := referenceOf(n, src); ok {
			refs = append(refs, ref)
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
	return dedupe(refs), nil
}

func referenceOf(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "import_statement", "export_statement":
		if source := n.ChildByFieldName("source"); source != nil {
			return stringLiteral(source, src)
		}
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return "", false
		}
		callee := fn.Content(src)
		if callee != "import" && callee != "require" {
			return "", false
		}
		args := n.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() == 0 {
			return "", false
		}
		return stringLiteral(args.NamedChild(0), src)
	}
	return "", false
}

func stringLiteral(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	raw := n.Content(src)
	if len(raw) < 2 {
		return "", false
	}
	return raw[1 : len(raw)-1], true
}
