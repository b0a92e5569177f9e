package parquet

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet/compress"

	"github.com/custodia-labs/dvf-ingest/internal/core/domain"
)

// MetadataSemanticType is the field metadata key holding the semantic type.
const MetadataSemanticType = "dvf.semantic_type"

// arrowType returns the Arrow storage type of a semantic type.
func arrowType(t domain.SemanticType) (arrow.DataType, error) {
	switch t {
	case domain.TypeText, domain.TypeString:
		return arrow.BinaryTypes.String, nil
	case domain.TypeInteger:
		return arrow.PrimitiveTypes.Int64, nil
	case domain.TypeFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case domain.TypeDate:
		return arrow.FixedWidthTypes.Date32, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
	}
}

// semanticType recovers the semantic type of a field read back from disk,
// preferring stored metadata over the physical type.
func semanticType(f arrow.Field) (domain.SemanticType, error) {
	if idx := f.Metadata.FindKey(MetadataSemanticType); idx >= 0 {
		if t := domain.SemanticType(f.Metadata.Values()[idx]); t.IsValid() {
			return t, nil
		}
	}
	switch f.Type.ID() {
	case arrow.STRING:
		return domain.TypeText, nil
	case arrow.INT64:
		return domain.TypeInteger, nil
	case arrow.FLOAT64:
		return domain.TypeFloat, nil
	case arrow.DATE32:
		return domain.TypeDate, nil
	default:
		return "", fmt.Errorf("%w: field %q has Arrow type %s", domain.ErrUnsupportedType, f.Name, f.Type)
	}
}

// tableSchema builds the Arrow schema of a domain table.
func tableSchema(table *domain.Table) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, table.NumColumns())
	for _, c := range table.Columns {
		typ, err := arrowType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields = append(fields, arrow.Field{
			Name:     c.Name,
			Type:     typ,
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{MetadataSemanticType}, []string{c.Type.String()}),
		})
	}
	return arrow.NewSchema(fields, nil), nil
}

// Codec resolves a compression name. An empty name means snappy.
func Codec(name string) (compress.Compression, error) {
	switch name {
	case "", "snappy":
		return compress.Codecs.Snappy, nil
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "lz4":
		return compress.Codecs.Lz4Raw, nil
	default:
		return compress.Codecs.Uncompressed, fmt.Errorf("%w: compression %q", domain.ErrUnsupportedType, name)
	}
}
