package csvsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReadQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query    string
		expected bool
	}{
		{"select 1", true},
		{"  SELECT * FROM t", true},
		{"with x as (select 1) select * from x", true},
		{"pragma table_info(t)", true},
		{"values (1), (2)", true},
		{"explain query plan select 1", true},
		{"(select 1) union (select 2)", true},
		{"-- note\nselect 1", true},
		{"/* block */ select 1", true},
		{"select*from users", true},
		{"values(1)", true},
		{"select(1)", true},
		{"( select 1)", true},
		{"insert into t values (1) returning rowid", true},
		{"selected from t", false},
		{"insert into t values ('returning')", false},
		{"insert into t values (1)", false},
		{"create table t (a)", false},
		{"-- only a comment", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isReadQuery(tt.query), tt.query)
	}
}

func TestRunQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, execStatement(ctx, db, "CREATE TABLE t (a, b)"))
	require.NoError(t, execStatement(ctx, db, "INSERT INTO t VALUES (1, 'x'), (NULL, x'6869')"))

	rs, err := runQuery(ctx, db, "SELECT a, b FROM t ORDER BY rowid")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	assert.Equal(t, int64(1), rs.Rows[0][0])
	assert.Equal(t, "x", rs.Rows[0][1])
	assert.Nil(t, rs.Rows[1][0])
	assert.Equal(t, "hi", rs.Rows[1][1])

	_, err = runQuery(ctx, db, "SELECT * FROM missing")
	assert.ErrorIs(t, err, ErrQuery)

	assert.ErrorIs(t, execStatement(ctx, db, "DROP TABLE missing"), ErrQuery)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NULL", formatValue(nil, "NULL"))
	assert.Equal(t, "", formatValue(nil, ""))
	assert.Equal(t, "42", formatValue(int64(42), ""))
	assert.Equal(t, "1.5", formatValue(1.5, ""))
	assert.Equal(t, "raw", formatValue([]byte("raw"), ""))
}
