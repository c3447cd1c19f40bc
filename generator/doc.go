// Package generator is the runtime entry point: it resolves adapter types
// for contract/source pairs and activates instances of them.
//
//	g, err := generator.New(generator.WithTables(adapters.Adapters))
//	inv, err := generator.Duck[store.Inventory](ctx, g, depot)
//
// Requests are served by adapters generated ahead of time when their key
// is embedded, by adapters loaded earlier in the process, or by compiling
// the adapter into a plugin when a compiler is configured.
package generator
