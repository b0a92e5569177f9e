// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Catalog: dataset search and dataset detail lookups
//   - Downloader: streams a remote file to local disk
//   - ArchiveExtractor: unpacks a downloaded archive
//   - TableReader: loads a delimited text file as all-text columns
//   - TableWriter: serialises a typed table to a columnar file
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline still runs without them:
//
//   - RunStore: ingestion history persistence
//   - PipelineMetrics: per-stage timings and counters
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
