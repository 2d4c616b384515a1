/*
Package dsl provides a fluent Go builder for constructing hive combs
programmatically, as an alternative to JSON records on disk. It is useful
for tests, embedded setups, and any place where IDE completion and type
checking beat hand-written wire documents.

Example usage:

	b := dsl.New()

	b.Hex("docs-home").
		Name("Documentation Home").
		Hints("start here", "documentation landing").
		Tags("docs").
		Edge("to-api", "api-reference").Intent("api details").Priority(5).
		Edge("to-support", "external:support-portal").Always().Priority(1)

	b.Hex("api-reference").
		Name("API Reference").
		Hints("find api endpoints").
		Data(map[string]any{"openapi": "3.0"})

	store, err := b.Store()
	// ... hand the store to hive.New(hive.WithStore(store))
*/
package dsl
