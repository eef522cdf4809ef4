package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	colors := []string{"red", "blue", "blue"}

	require.Equal(t, 1, FindIndex(colors, "blue"), "Should return the first match")
	require.Equal(t, -1, FindIndex(colors, "pink"))
	require.Equal(t, -1, FindIndex(nil, "red"))
}
