package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/mocks"
)

func TestSourcesHandler_List(t *testing.T) {
	store := mocks.NewSourceStore()
	store.Sources["b.yaml"] = &entities.Source{Address: "b.yaml"}
	store.Sources["a.yaml"] = &entities.Source{Address: "a.yaml"}

	sources, err := NewSourcesHandler(store).List(t.Context())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "a.yaml", sources[0].Address)
}

func TestSourcesHandler_Remove(t *testing.T) {
	store := mocks.NewSourceStore()
	store.Sources["a.yaml"] = &entities.Source{Address: "a.yaml"}

	require.NoError(t, NewSourcesHandler(store).Remove(t.Context(), "a.yaml"))
	assert.Empty(t, store.Sources)
}

func TestSourcesHandler_Errors(t *testing.T) {
	store := mocks.NewSourceStore()
	store.Err = errors.New("closed")
	handler := NewSourcesHandler(store)

	_, err := handler.List(t.Context())
	assert.ErrorContains(t, err, "listing sources: closed")

	err = handler.Remove(t.Context(), "a.yaml")
	assert.ErrorContains(t, err, "removing source: closed")
}

func TestHistoryHandler_Handle(t *testing.T) {
	store := mocks.NewSourceStore()
	store.Compilations = []entities.Compilation{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	runs, err := NewHistoryHandler(store).Handle(t.Context(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "3", runs[0].ID)
	assert.Equal(t, "2", runs[1].ID)

	store.Err = errors.New("closed")
	_, err = NewHistoryHandler(store).Handle(t.Context(), 0)
	assert.ErrorContains(t, err, "listing compilations")
}
