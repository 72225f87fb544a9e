package csvsearch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/csvsearch/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResultSet() *ResultSet {
	return &ResultSet{
		Columns: []string{"id", "name", "note"},
		Rows: [][]any{
			{int64(1), "alice", "plain"},
			{int64(2), "bob", "a,b \"quoted\""},
			{int64(3), nil, 2.5},
		},
	}
}

func TestExporter_WriteDelimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     model.ExportOptions
		expected string
	}{
		{
			name:     "csv quoted",
			opts:     model.NewExportOptions(),
			expected: "id,name,note\n1,alice,plain\n2,bob,\"a,b \"\"quoted\"\"\"\n3,,2.5\n",
		},
		{
			name:     "csv naive",
			opts:     model.NewExportOptions().WithQuote(false),
			expected: "id,name,note\n1,alice,plain\n2,bob,a,b \"quoted\"\n3,,2.5\n",
		},
		{
			name:     "tsv",
			opts:     model.ExportOptions{Format: model.FileTypeTSV, Quote: true},
			expected: "id\tname\tnote\n1\talice\tplain\n2\tbob\t\"a,b \"\"quoted\"\"\"\n3\t\t2.5\n",
		},
		{
			name:     "ltsv",
			opts:     model.ExportOptions{Format: model.FileTypeLTSV, Quote: true},
			expected: "id:1\tname:alice\tnote:plain\nid:2\tname:bob\tnote:a,b \"quoted\"\nid:3\tname:\tnote:2.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, NewExporter(tt.opts.Quote).Write(&buf, sampleResultSet(), tt.opts))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestEscapeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"cr\rhere", "\"cr\rhere\""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeValue(tt.value, ',', true), tt.value)
		assert.Equal(t, tt.value, escapeValue(tt.value, ',', false), tt.value)
	}
}

func TestExporter_ExportFile_SelectOne(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	rs := &ResultSet{Columns: []string{"1"}, Rows: [][]any{{int64(1)}}}

	require.NoError(t, NewExporter(true).ExportFile(path, rs))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n", string(got))
}

func TestExporter_ExportFile_Truncates(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "out.csv", "old content that is longer\n")
	rs := &ResultSet{Columns: []string{"a"}, Rows: [][]any{{"x"}}}

	require.NoError(t, NewExporter(true).ExportFile(path, rs))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nx\n", string(got))
}

func TestExporter_ExportFile_Compressed(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"out.csv.gz", "out.tsv.xz", "out.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, NewExporter(true).ExportFile(path, &ResultSet{Columns: []string{"a", "b"}, Rows: [][]any{{"1", "2"}}}))

			r, cleanup, err := openDecompressed(path)
			require.NoError(t, err)
			defer cleanup()
			got, err := io.ReadAll(r)
			require.NoError(t, err)

			want := "a,b\n1,2\n"
			if model.NewFile(name).Type() == model.FileTypeTSV {
				want = "a\tb\n1\t2\n"
			}
			assert.Equal(t, want, string(got))
		})
	}
}

func TestExporter_ExportFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &ResultSet{Columns: []string{"a"}}

	err := NewExporter(true).ExportFile(filepath.Join(dir, "missing", "out.csv"), rs)
	assert.ErrorIs(t, err, ErrRedirect)

	err = NewExporter(true).ExportFile(filepath.Join(dir, "out.csv.bz2"), rs)
	assert.ErrorIs(t, err, ErrRedirect)
}

func TestExporter_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"round.csv", "round.tsv", "round.ltsv", "round.parquet", "round.xlsx", "round.csv.gz"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			l := NewLoader(openTestDB(t))
			src := writeTestFile(t, t.TempDir(), "src.csv", "id,name,note\n1,alice,\"x, y\"\n2,bob,\"line\"\"q\"\n3,carol,\n")
			_, err := l.LoadFile(ctx, src, LoadOptions{})
			require.NoError(t, err)

			rs, err := runQuery(ctx, l.db, "SELECT * FROM src ORDER BY id")
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, NewExporter(true).ExportFile(path, rs))

			relations, err := l.LoadFile(ctx, path, LoadOptions{TableName: "copy"})
			require.NoError(t, err)
			table := relations[0].Name

			assert.Equal(t,
				queryStrings(t, l.db, "SELECT * FROM src ORDER BY id"),
				queryStrings(t, l.db, `SELECT * FROM "`+table+`" ORDER BY id`),
			)
		})
	}
}
