// Package domain defines the core entities of the DVF ingestion pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Dataset, Resource: catalog entries read from the open-data portal
//   - CoercionTable: the column name to semantic type configuration
//   - Table, Column: the in-memory columnar dataset
//   - IngestRequest, IngestResult, IngestRun: one pipeline invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
