// Package config reads adapters.yaml, the file driving ahead-of-time
// generation.
//
//	version: "1"
//	packages: [./store, ./warehouse]
//	output:
//	  dir: ./adapters
//	  package: example.com/shop/adapters
//	requests:
//	  - contract: example.com/shop/store.Greeter
//	    source: example.com/shop/warehouse.Greeting
//	  - contract: example.com/shop/store.Inventory
//	    mode: intercept
//
// Parse applies defaults and checks the structure; Check resolves the named
// types against a universe.
package config
