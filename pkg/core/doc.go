// Package core holds the types shared between the warehouse adapters and the
// rest of pingerdash: adapter configuration, target configuration and the
// rows wrapper returned by queries.
package core
