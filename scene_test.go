package kumitate_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/kumitate"
)

func sampleScene() *kumitate.Scene {
	return &kumitate.Scene{
		Systems: []kumitate.ClassRef{
			{Class: "gravity_system", Kwargs: map[string]any{"g": -9.81}},
		},
		Entities: map[string][]string{
			"crate":  {"crate_weight", "crate_body"},
			"marker": {"marker_weight"},
		},
		Components: map[string]kumitate.ClassRef{
			"crate_weight":  {Class: "a", Kwargs: map[string]any{"value": 7}},
			"crate_body":    {Class: "b", Kwargs: map[string]any{"value": 2.5}},
			"marker_weight": {Class: "a", Kwargs: map[string]any{"value": 1}},
		},
	}
}

func TestSceneBuild(t *testing.T) {
	catalog := newTestAssembly()
	world, err := sampleScene().Build(catalog)
	require.NoError(t, err)

	assert.Equal(t, 2, world.EntityCount())
	assert.Len(t, world.Systems(), 1)
	assert.Equal(t, 2, catalog.a.Len())
	assert.Equal(t, 1, catalog.b.Len())

	for _, e := range catalog.b.Entities() {
		assert.Equal(t, "crate", e.Name)
		v, ok := catalog.b.Get(e)
		require.True(t, ok)
		assert.Equal(t, 2.5, v.Value)
	}
}

func TestSceneBuildUnknownClasses(t *testing.T) {
	scene := sampleScene()
	scene.Systems[0].Class = "nonexistent_system"
	_, err := scene.Build(newTestAssembly())
	assert.ErrorIs(t, err, kumitate.ErrDeserialize)

	scene = sampleScene()
	scene.Components["crate_body"] = kumitate.ClassRef{Class: "nonexistent", Kwargs: map[string]any{}}
	_, err = scene.Build(newTestAssembly())
	assert.ErrorIs(t, err, kumitate.ErrDeserialize)

	scene = sampleScene()
	scene.Entities["crate"] = []string{"missing_key"}
	_, err = scene.Build(newTestAssembly())
	assert.ErrorIs(t, err, kumitate.ErrDeserialize)
}

func TestSceneJSONRoundTrip(t *testing.T) {
	scene := sampleScene()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, scene.SaveJSON(path))

	loaded, err := kumitate.LoadSceneJSON(path)
	require.NoError(t, err)

	assert.Equal(t, scene.Systems[0].Class, loaded.Systems[0].Class)
	assert.Equal(t, scene.Entities, loaded.Entities)
	for key, ref := range scene.Components {
		assert.Equal(t, ref.Class, loaded.Components[key].Class)
	}

	// A world built from the reloaded scene matches one built from the
	// original, modulo entity creation order across map iteration.
	world, err := loaded.Build(newTestAssembly())
	require.NoError(t, err)
	assert.Equal(t, 2, world.EntityCount())
}
