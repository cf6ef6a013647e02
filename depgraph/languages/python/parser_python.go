package python

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is returned when the source does not parse cleanly.
var ErrSyntax = errors.New("python source contains syntax errors")

// ImportStatement is one import reference found in a Python file.
//
// A plain `import a.b, c` yields one statement per module with Level 0.
// A `from X import n1, n2` yields a single statement with IsFrom set and
// Names holding the imported names. Module is empty for `from . import n`.
type ImportStatement struct {
	Module string
	Level  int
	Names  []string
	IsFrom bool
}

// IsRelative reports whether the statement resolves against the importing file's directory.
func (s ImportStatement) IsRelative() bool {
	return s.Level > 0
}

// ParseImports parses Python source code and extracts its import statements.
// Source with syntax errors yields ErrSyntax and no statements.
func ParseImports(sourceCode []byte) ([]ImportStatement, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Python code: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, ErrSyntax
	}

	imports, ok := extractImportsFromTree(root, sourceCode)
	if !ok {
		return nil, ErrSyntax
	}
	return imports, nil
}

// extractImportsFromTree walks the whole tree so imports nested in functions,
// conditionals and try blocks are found too. It reports false when the tree
// holds a Python 2 statement that Python 3 rejects.
func extractImportsFromTree(rootNode *sitter.Node, sourceCode []byte) ([]ImportStatement, bool) {
	var imports []ImportStatement
	valid := true

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			for _, module := range importStatementModules(n, sourceCode) {
				imports = append(imports, ImportStatement{Module: module})
			}
			return
		case "import_from_statement", "future_import_statement":
			imports = append(imports, importFromStatement(n, sourceCode))
			return
		case "print_statement", "exec_statement":
			if isPython2Statement(n) {
				valid = false
				return
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return imports, valid
}

// isPython2Statement reports whether a print or exec statement node only
// parses under Python 2. `print >>f, x` is still a valid Python 3 expression.
func isPython2Statement(n *sitter.Node) bool {
	if n.Type() == "exec_statement" {
		return true
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == "chevron" {
			return false
		}
	}
	return true
}

func importStatementModules(node *sitter.Node, sourceCode []byte) []string {
	var modules []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		module := importedName(node.NamedChild(i), sourceCode)
		if module != "" {
			modules = append(modules, module)
		}
	}
	return modules
}

func importFromStatement(node *sitter.Node, sourceCode []byte) ImportStatement {
	stmt := ImportStatement{IsFrom: true}
	if node.Type() == "future_import_statement" {
		stmt.Module = "__future__"
	}

	afterImportKeyword := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		if !afterImportKeyword {
			switch child.Type() {
			case "import":
				afterImportKeyword = true
			case "relative_import":
				stmt.Level, stmt.Module = relativeImport(child, sourceCode)
			case "dotted_name":
				stmt.Module = strings.TrimSpace(child.Content(sourceCode))
			}
			continue
		}

		if name := importedName(child, sourceCode); name != "" {
			stmt.Names = append(stmt.Names, name)
		}
	}

	return stmt
}

// relativeImport splits `..pkg.mod` into its dot count and dotted remainder.
func relativeImport(node *sitter.Node, sourceCode []byte) (int, string) {
	level := 0
	module := ""
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_prefix":
			level = strings.Count(child.Content(sourceCode), ".")
		case "dotted_name":
			module = strings.TrimSpace(child.Content(sourceCode))
		}
	}
	return level, module
}

func importedName(node *sitter.Node, sourceCode []byte) string {
	if node == nil {
		return ""
	}

	switch node.Type() {
	case "dotted_name", "identifier":
		return strings.TrimSpace(node.Content(sourceCode))
	case "aliased_import":
		if name := node.ChildByFieldName("name"); name != nil {
			return strings.TrimSpace(name.Content(sourceCode))
		}
	}
	return ""
}
