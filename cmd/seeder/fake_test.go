package main

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeMatchIsValid(t *testing.T) {
	f := gofakeit.New(7)
	roster := make([]stats.Identity, 12)
	for i := range roster {
		roster[i] = stats.Identity{Name: f.Username(), Tag: string(rune('a' + i))}
	}

	for i := 0; i < 20; i++ {
		rec := fakeMatch(f, roster)
		require.NoError(t, stats.ValidateMatch(rec))
		assert.Len(t, rec.Players, stats.MatchSize)
	}
}
