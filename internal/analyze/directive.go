package analyze

import (
	"go/ast"
	"go/token"

	"adapter-generator/internal/meta"
)

// directives maps a method name position to its parameter kind directives.
type directives map[token.Pos]map[string]meta.ParamKind

func (d directives) index(files []*ast.File) {
	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncDecl:
				if n.Recv != nil {
					d.add(n.Name.Pos(), n.Doc)
				}
			case *ast.InterfaceType:
				for _, m := range n.Methods.List {
					if len(m.Names) == 1 {
						d.add(m.Names[0].Pos(), m.Doc)
					}
				}
			}

			return true
		})
	}
}

func (d directives) add(pos token.Pos, doc *ast.CommentGroup) {
	if doc == nil {
		return
	}

	for _, c := range doc.List {
		kind, names, ok := meta.ParseDirective(c.Text)
		if !ok {
			continue
		}

		if d[pos] == nil {
			d[pos] = make(map[string]meta.ParamKind)
		}

		for _, n := range names {
			d[pos][n] = kind
		}
	}
}
