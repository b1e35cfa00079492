package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBodyForbidden(t *testing.T) {
	for _, code := range []Code{Continue, SwitchingProtocols, NoContent, NotModified} {
		require.True(t, BodyForbidden(code), code)
	}

	for _, code := range []Code{OK, Created, NotFound, InternalServerError} {
		require.False(t, BodyForbidden(code), code)
	}
}

func TestClass(t *testing.T) {
	require.True(t, Created.IsSuccess())
	require.False(t, NotFound.IsSuccess())
	require.Equal(t, 4, NotFound.Class())
}
