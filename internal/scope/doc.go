// Package scope maps changed file paths to the monorepo scopes they belong
// to.
//
// A scope is a short label such as a project or package name. Paths are
// matched against an ordered table of rules; the first rule whose pattern
// matches a path decides its scope and later rules are not consulted:
//
//	set, err := scope.Extract(stagedFiles, scope.DefaultRules(),
//		scope.WithIgnore([]string{"**/*.lock"}))
//	set.Sorted() // [app1 root shared]
//
// Extract returns ErrNoScope when no path produced a scope, which usually
// means the rule table does not fit the repository layout.
package scope
