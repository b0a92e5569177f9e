package driven

// ArchiveEntry describes one file inside an archive.
type ArchiveEntry struct {
	Name string
	Size int64
}

// ArchiveExtractor reads downloaded archives.
type ArchiveExtractor interface {
	// Entries lists the archive's file entries in stored order.
	Entries(archivePath string) ([]ArchiveEntry, error)

	// Extract writes the entry at index into destDir and returns the
	// extracted file path.
	Extract(archivePath string, index int, destDir string) (string, error)
}
