package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileType represents supported tabular file types
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtLTSV is the LTSV file extension
	ExtLTSV = ".ltsv"
	// ExtXLSX is the Excel XLSX file extension
	ExtXLSX = ".xlsx"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

// String returns the lower-case name of the file type
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeTSV:
		return "tsv"
	case FileTypeLTSV:
		return "ltsv"
	case FileTypeXLSX:
		return "xlsx"
	case FileTypeParquet:
		return "parquet"
	default:
		return "unsupported"
	}
}

// Extension returns the file extension for the file type
func (ft FileType) Extension() string {
	switch ft {
	case FileTypeCSV:
		return ExtCSV
	case FileTypeTSV:
		return ExtTSV
	case FileTypeLTSV:
		return ExtLTSV
	case FileTypeXLSX:
		return ExtXLSX
	case FileTypeParquet:
		return ExtParquet
	default:
		return ""
	}
}

// IsText reports whether the file type is line oriented text
func (ft FileType) IsText() bool {
	return ft == FileTypeCSV || ft == FileTypeTSV || ft == FileTypeLTSV
}

// ParseFileType parses a format name such as "csv" or ".tsv".
func ParseFileType(name string) (FileType, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for _, ft := range []FileType{FileTypeCSV, FileTypeTSV, FileTypeLTSV, FileTypeXLSX, FileTypeParquet} {
		if ft.String() == name {
			return ft, nil
		}
	}
	return FileTypeUnsupported, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGZ:
		return ExtGZ
	case CompressionBZ2:
		return ExtBZ2
	case CompressionXZ:
		return ExtXZ
	case CompressionZSTD:
		return ExtZSTD
	default:
		return ""
	}
}

// compressionExtensions lists compression suffixes in detection order
var compressionExtensions = []struct {
	ext         string
	compression CompressionType
}{
	{ExtGZ, CompressionGZ},
	{ExtBZ2, CompressionBZ2},
	{ExtXZ, CompressionXZ},
	{ExtZSTD, CompressionZSTD},
}

// File represents a tabular file that can be loaded as a relation
type File struct {
	path        string
	fileType    FileType
	compression CompressionType
}

// NewFile creates a new File, detecting the format and compression from the path
func NewFile(path string) *File {
	base, compression := StripCompressionExtension(path)
	return &File{
		path:        path,
		fileType:    detectFileType(base),
		compression: compression,
	}
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Type returns file type
func (f *File) Type() FileType {
	return f.fileType
}

// Compression returns the compression type of the file
func (f *File) Compression() CompressionType {
	return f.compression
}

// IsCompressed returns true if file is compressed
func (f *File) IsCompressed() bool {
	return f.compression != CompressionNone
}

// IsSupported reports whether the file type can be loaded
func (f *File) IsSupported() bool {
	return f.fileType != FileTypeUnsupported
}

// IsSupportedFile checks if the file has a supported extension
func IsSupportedFile(fileName string) bool {
	return NewFile(fileName).IsSupported()
}

// StripCompressionExtension removes a trailing compression extension from
// path and reports which compression it named.
func StripCompressionExtension(path string) (string, CompressionType) {
	lower := strings.ToLower(path)
	for _, c := range compressionExtensions {
		if strings.HasSuffix(lower, c.ext) {
			return path[:len(path)-len(c.ext)], c.compression
		}
	}
	return path, CompressionNone
}

// detectFileType detects file type from an extension without compression suffix
func detectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return FileTypeCSV
	case ExtTSV:
		return FileTypeTSV
	case ExtLTSV:
		return FileTypeLTSV
	case ExtXLSX:
		return FileTypeXLSX
	case ExtParquet:
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}
