// Package lexer recovers class identities and class references from PHP
// source text without parsing it.
//
// # Overview
//
// The extractor is a best-effort approximation built from six regular
// expressions. It trades correctness on edge cases (multi-class files,
// aliased imports, keywords inside comments or strings) for simplicity: any
// text that looks like one of the patterns is matched.
//
// Source text is first passed through [Normalize], which folds the file onto a
// single line so that multi-token patterns such as "class Foo" match no
// matter how the source was formatted.
//
// # Usage
//
//	ex := lexer.Extract(lexer.Normalize(src))
//	fmt.Println(ex.Identity) // App\Http\Controller
//	fmt.Println(ex.Imports)  // [App\Models\User Illuminate\Http\Request]
//
// # Degenerate Identities
//
// A file must contain exactly one namespace statement and exactly one
// class, interface or trait declaration for its identity to be complete.
// Zero or several matches resolve to an empty segment instead of an error,
// so a file without a namespace declaring Foo has identity `\Foo`, and a
// file with two classes in namespace App has identity `App\`. Use
// [Extraction.Degenerate] to detect these.
//
// # Reference Categories
//
// Only [Extraction.Imports] (use statements) feed the dependency graph.
// Constructed types, static-call receivers and typed-variable declarations
// are extracted by the same mechanism and exposed for inspection, but have no
// effect on the graph.
package lexer
