package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupIdentifier(t *testing.T) {
	for kw, typ := range keywords {
		require.Equal(t, typ, LookupIdentifier(kw))
	}

	require.Equal(t, Type(IDENT), LookupIdentifier("counter"))
	require.Equal(t, Type(IDENT), LookupIdentifier("x"))
}

func TestIsKeyword(t *testing.T) {
	require.True(t, IsKeyword(COPY))
	require.True(t, IsKeyword(MATCH))
	require.False(t, IsKeyword(IDENT))
	require.False(t, IsKeyword(Type("bogus")))
}
