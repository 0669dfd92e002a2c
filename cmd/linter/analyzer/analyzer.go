package analyzer

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "forbiddencalls"
	analyzerDoc  = "reports panic, log.Fatal and os.Exit outside main, and any other use of the standard log package"
)

// Analyzer checks for forbidden calls. Logging goes through zerolog, so the standard log
// package is only tolerated for log.Fatal inside main.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var fatalFuncs = map[string]bool{
	"Fatal":   true,
	"Fatalf":  true,
	"Fatalln": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.CallExpr)(nil),
	}

	var inMain *ast.FuncDecl

	insp.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if isTestFile(pass, node) {
			return false
		}

		switch n := node.(type) {
		case *ast.FuncDecl:
			if n.Name.Name == "main" && n.Recv == nil {
				if push {
					inMain = n
				} else {
					inMain = nil
				}
			}
		case *ast.CallExpr:
			if push {
				checkCall(pass, n, inMain != nil)
			}
		}
		return true
	})

	return nil, nil
}

func isTestFile(pass *analysis.Pass, node ast.Node) bool {
	return strings.HasSuffix(pass.Fset.Position(node.Pos()).Filename, "_test.go")
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr, inMain bool) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name != "panic" {
			return
		}
		if _, builtin := pass.TypesInfo.Uses[fn].(*types.Builtin); builtin {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		checkSelectorExpr(pass, fn, callExpr, inMain)
	}
}

func checkSelectorExpr(pass *analysis.Pass, selectorExpr *ast.SelectorExpr, callExpr *ast.CallExpr, inMain bool) {
	ident, ok := selectorExpr.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return
	}

	fn := selectorExpr.Sel.Name

	switch pkgName.Imported().Path() {
	case "log":
		switch {
		case fatalFuncs[fn] && !inMain:
			pass.Reportf(callExpr.Pos(), "log.%s is forbidden outside main function", fn)
		case !fatalFuncs[fn]:
			pass.Reportf(callExpr.Pos(), "log.%s is forbidden, use zerolog", fn)
		}
	case "os":
		if fn == "Exit" && !inMain {
			pass.Reportf(callExpr.Pos(), "os.Exit is forbidden outside main function")
		}
	}
}
