package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"TeleshopNews/internal/domain"
)

func TestItemIDDeterministic(t *testing.T) {
	link := "https://gagadget.com/news/phones/12345"

	first := domain.ItemID(link)
	second := domain.ItemID(link)

	require.Equal(t, first, second)
	require.Len(t, first, 40) // sha1 hex
	require.NotEqual(t, first, domain.ItemID(link+"/"))
}
