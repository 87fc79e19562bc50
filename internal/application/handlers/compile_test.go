package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rulebook-core/internal/domain/document"
	"github.com/ersonp/rulebook-core/internal/domain/entities"
	"github.com/ersonp/rulebook-core/internal/domain/mocks"
	"github.com/ersonp/rulebook-core/internal/domain/ruleerr"
	"github.com/ersonp/rulebook-core/internal/domain/services"
)

// doc builds an ordered document from key/value pairs.
func doc(pairs ...any) *document.Map {
	m := document.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

func coreDoc() *document.Map {
	return doc(
		"rulebook", "core",
		"parser", 1,
		"mechanisms", doc(
			"basics", doc(
				"playbook fields", doc("damage", "dice"),
				"character fields", doc("hp", "start as 10"),
				"notes", "ignored",
			),
		),
		"playbooks", doc(
			"fighter", doc("damage", "d10"),
			"wizard", doc("damage", "d4"),
		),
	)
}

type compileFixture struct {
	fetcher *mocks.Fetcher
	decoder *mocks.Decoder
	store   *mocks.SourceStore
	handler *CompileHandler
}

func newCompileFixture() *compileFixture {
	f := &compileFixture{
		fetcher: mocks.NewFetcher(),
		decoder: mocks.NewDecoder(),
		store:   mocks.NewSourceStore(),
	}
	f.fetcher.Documents["core.yaml"] = []byte("core")
	f.decoder.Documents["core"] = coreDoc()

	loader := services.NewLoaderService(f.fetcher, f.decoder, f.store, services.LoaderOptions{})
	f.handler = NewCompileHandler(loader, f.store, nil)
	return f
}

func TestCompileHandler_Handle(t *testing.T) {
	f := newCompileFixture()

	result, err := f.handler.Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"fighter", "wizard"}, result.Rulebook.PlaybookNames)
	require.Len(t, result.Rulebook.Warnings, 1)

	run := result.Compilation
	assert.NotEmpty(t, run.ID)
	assert.True(t, run.Succeeded())
	assert.Equal(t, 1, run.Mechanisms)
	assert.Equal(t, 2, run.Playbooks)
	assert.Equal(t, 1, run.Warnings)
	assert.Equal(t, []string{"core.yaml"}, run.Sources)

	require.Len(t, f.store.Compilations, 1)
	assert.Equal(t, run.ID, f.store.Compilations[0].ID)
	assert.Contains(t, f.store.Sources, "core.yaml")
}

func TestCompileHandler_Handle_Strict(t *testing.T) {
	f := newCompileFixture()

	_, err := f.handler.Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml"}, Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleerr.ErrSchema)

	require.Len(t, f.store.Compilations, 1)
	assert.False(t, f.store.Compilations[0].Succeeded())
	assert.Contains(t, f.store.Compilations[0].Error, "notes")
}

func TestCompileHandler_Handle_NoAddresses(t *testing.T) {
	f := newCompileFixture()

	_, err := f.handler.Handle(t.Context(), CompileRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources to compile")
	assert.Empty(t, f.store.Compilations)
}

func TestCompileHandler_Handle_FetchError(t *testing.T) {
	f := newCompileFixture()

	_, err := f.handler.Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml", "missing.yaml"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching missing.yaml")

	require.Len(t, f.store.Compilations, 1)
	assert.Contains(t, f.store.Compilations[0].Error, "missing.yaml")
}

func TestCompileHandler_Handle_Cached(t *testing.T) {
	f := newCompileFixture()
	f.store.Sources["core.yaml"] = &entities.Source{Address: "core.yaml", Content: []byte("core")}
	f.fetcher.Err = errors.New("offline")

	result, err := f.handler.Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml"}, Cached: true})
	require.NoError(t, err)
	assert.Len(t, result.Rulebook.Mechanisms, 1)
	assert.Empty(t, f.fetcher.Calls)

	_, err = f.handler.Handle(t.Context(), CompileRequest{Addresses: []string{"other.yaml"}, Cached: true})
	assert.ErrorContains(t, err, "other.yaml is not cached")
}

func TestCompileHandler_Handle_RecordError(t *testing.T) {
	f := newCompileFixture()
	loader := services.NewLoaderService(f.fetcher, f.decoder, nil, services.LoaderOptions{})
	store := mocks.NewSourceStore()
	store.Err = errors.New("read-only database")

	_, err := NewCompileHandler(loader, store, nil).Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recording compilation")
}

func TestCompileHandler_Handle_WithoutStore(t *testing.T) {
	f := newCompileFixture()
	loader := services.NewLoaderService(f.fetcher, f.decoder, nil, services.LoaderOptions{})

	result, err := NewCompileHandler(loader, nil, nil).Handle(t.Context(), CompileRequest{Addresses: []string{"core.yaml"}})
	require.NoError(t, err)
	assert.NotNil(t, result.Rulebook)
}
