// Package source defines the paper feed abstraction and a registry of
// feed implementations.
//
// A Source fetches the papers published on a given day from a public
// feed. Implementations register themselves by name so the profile can
// select one without the caller importing it directly:
//
//	import _ "github.com/poiesic/paperflow/source/arxiv"
//
//	src, err := source.Open("arxiv", nil)
//	papers, err := src.Fetch(ctx, day, []string{"cs.CL"})
package source
