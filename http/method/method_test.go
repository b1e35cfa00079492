package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethod(t *testing.T) {
	assert.Equal(t, "GET", GET.String())
	assert.Equal(t, "HEAD", HEAD.String())
	assert.Equal(t, "OPTIONS", OPTIONS.String())
	assert.Equal(t, "PATCH", PATCH.String())
	assert.Empty(t, Unknown.String())
	assert.Empty(t, Method(200).String())
}
