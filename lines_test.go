package csvsearch

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptReader(t *testing.T) {
	t.Parallel()

	var prompts bytes.Buffer
	r := NewPromptReader(strings.NewReader("tables\r\nselect 1;\nlast"), &prompts, ">>> ")
	defer r.Close()

	for _, want := range []string{"tables", "select 1;", "last"} {
		line, err := r.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, ">>> >>> >>> >>> ", prompts.String())
}
