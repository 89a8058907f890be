// Package parser turns source files into the structural class model.
//
// Java and Python files are parsed with tree-sitter; model files (.yaml,
// .yml, .json) are decoded directly. Every frontend reports, per class, its
// fields, methods and constructors together with the member accesses found in
// each method body.
//
// Basic usage:
//
//	registry := parser.DefaultRegistry()
//	classes, err := registry.ParseFile(ctx, "Shop.java", content)
//	if err != nil {
//	    // Handle parsing error
//	}
package parser
