// Package parquet writes and reads domain tables as Parquet files through
// Apache Arrow.
//
// Semantic types map onto Arrow types as follows, every field nullable:
//
//	text, string  -> utf8
//	integer       -> int64
//	float         -> float64
//	date          -> date32
//
// The semantic type is also stored as field metadata under
// MetadataSemanticType so text and string columns survive a round trip.
// No index column is written; columns keep table order.
package parquet
