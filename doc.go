// Package options provides a typed, introspectable option declaration system:
// strongly typed option descriptors with defaults, legal-value constraints and
// write-once external bindings, grouped into named help groups and fed through
// a single canonical registration pass.
//
// Features:
//   - Typed descriptors over a closed kind set (integers, float, bool, string, string slice)
//   - Independent presence tracking for default and supplied values
//   - Deferred one-of constraint violations (recorded, never raised mid-declaration)
//   - Write-once binding of a descriptor to an external variable
//   - Visitor-based dispatch for cross-cutting passes without reflection at call sites
//   - A programmatic Registry backend with TOML/JSON/YAML input sources
//   - A NameExtractor backend deriving a deterministic signature from requested groups
//   - Builder pattern for assembly and validation
//
// Quick Start:
//
//	var rate float32
//	alpha := options.NewLocated("alpha", &rate).WithHelp("learning rate")
//	alpha.SetDefault(0.1)
//	alpha.SetOneOf(0.1, 0.2, 0.5)
//
//	reg := options.NewRegistry(map[string]any{"alpha": 0.2}, nil)
//	if err := reg.RegisterGroup(options.NewGroup("Learner").Add(alpha)); err != nil {
//	    log.Fatal(err)
//	}
//
//	v, _ := alpha.Value() // 0.2, and rate == 0.2
//
// Name extraction:
//
// The same declaration code can run against a NameExtractor instead of a
// Registry to discover which groups a configuration would activate. The
// generated name is the lexicographically sorted set of distinct group names
// joined with underscores, so it is stable across registration order and safe
// to use as a cache or version key.
//
// Thread Safety:
// Registry operations are guarded by a read-write mutex. The intended
// discipline is still a single canonical registration pass; the write-once
// rule on located descriptors is what keeps bound variables race-free.
package options
