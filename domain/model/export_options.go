package model

// ExportOptions configure how a result set is written to a redirect target.
type ExportOptions struct {
	// Format is the output file format
	Format FileType
	// Compression is the compression applied to the written file
	Compression CompressionType
	// Quote escapes fields containing the delimiter, quotes or line breaks.
	// When false, text formats are written as a plain join.
	Quote bool
}

// NewExportOptions returns CSV, uncompressed, quoted output.
func NewExportOptions() ExportOptions {
	return ExportOptions{
		Format:      FileTypeCSV,
		Compression: CompressionNone,
		Quote:       true,
	}
}

// ExportOptionsForPath derives the format and compression from a target path.
// Unknown extensions fall back to CSV.
func ExportOptionsForPath(path string) ExportOptions {
	opts := NewExportOptions()
	f := NewFile(path)
	opts.Compression = f.Compression()
	if f.IsSupported() {
		opts.Format = f.Type()
	}
	return opts
}

// WithQuote returns a copy of the options with quoting set.
func (o ExportOptions) WithQuote(quote bool) ExportOptions {
	o.Quote = quote
	return o
}

// Delimiter returns the field separator for delimited text formats.
func (o ExportOptions) Delimiter() byte {
	if o.Format == FileTypeTSV {
		return '\t'
	}
	return ','
}
