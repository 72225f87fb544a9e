package model

import (
	"testing"
)

func TestInferColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []string
		expected ColumnType
	}{
		{
			name:     "all integers",
			values:   []string{"123", "456", "789"},
			expected: ColumnTypeInteger,
		},
		{
			name:     "mixed integers and floats",
			values:   []string{"123", "45.6", "789"},
			expected: ColumnTypeReal,
		},
		{
			name:     "mixed numbers and text",
			values:   []string{"123", "hello", "789"},
			expected: ColumnTypeText,
		},
		{
			name:     "empty values",
			values:   []string{"", "", ""},
			expected: ColumnTypeText,
		},
		{
			name:     "integers with empty values",
			values:   []string{"123", "", "789"},
			expected: ColumnTypeInteger,
		},
		{
			name:     "negative floats",
			values:   []string{"-12.3", "45.6", "-78.9"},
			expected: ColumnTypeReal,
		},
		{
			name:     "scientific notation",
			values:   []string{"1e10", "2.5E-3"},
			expected: ColumnTypeReal,
		},
		{
			name:     "dates are text",
			values:   []string{"2024-01-01", "2024-02-01"},
			expected: ColumnTypeText,
		},
		{
			name:     "no values",
			values:   nil,
			expected: ColumnTypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InferColumnType(tt.values); got != tt.expected {
				t.Errorf("InferColumnType() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInferColumnsInfo(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"id", "name", "score"})
	records := []Record{
		NewRecord([]string{"1", "alice", "9.5"}),
		NewRecord([]string{"2", "bob", "7"}),
	}

	got := InferColumnsInfo(header, records)
	want := []ColumnInfo{
		{Name: "id", Type: ColumnTypeInteger},
		{Name: "name", Type: ColumnTypeText},
		{Name: "score", Type: ColumnTypeReal},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if InferColumnsInfo(nil, records) != nil {
		t.Error("expected nil for empty header")
	}
}
