// Package typedb holds named type descriptors.
//
// A DB is a concurrency-safe registry mapping names to ctype
// descriptors, so callers can build a catalog once (by hand, or
// imported from WIT component metadata via FromWIT) and mint views from
// it by name.
package typedb
