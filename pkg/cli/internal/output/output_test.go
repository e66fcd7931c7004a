package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"port": 8080}))
	assert.Equal(t, "{\n  \"port\": 8080\n}\n", buf.String())
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb\n", "  "))
	assert.Equal(t, "", Indent("\n", "  "))
}
