package csvsearch

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearRecorder counts clear requests.
type clearRecorder struct {
	calls int
}

func (c *clearRecorder) Clear(context.Context) error {
	c.calls++
	return nil
}

type testSession struct {
	*Session
	db      *sql.DB
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	clearer *clearRecorder
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenDatabase(MemoryTarget)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newTestSession(t *testing.T, opts ...Option) *testSession {
	t.Helper()

	db := openTestDB(t)
	ts := &testSession{
		db:      db,
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		clearer: &clearRecorder{},
	}
	opts = append([]Option{
		WithOutput(ts.out, ts.errOut),
		WithClearer(ts.clearer),
		WithProgram("csvsearch", "1.2.3"),
	}, opts...)
	ts.Session = NewSession(db, opts...)
	return ts
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func queryStrings(t *testing.T, db *sql.DB, query string) [][]string {
	t.Helper()

	rs, err := runQuery(context.Background(), db, query)
	require.NoError(t, err)
	out := make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = formatValue(v, "NULL")
		}
	}
	return out
}
