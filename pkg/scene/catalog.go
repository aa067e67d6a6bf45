package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned by NewByName for a name with no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a built-in scene, applying optional camera overrides
type Builder func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name accepted by NewByName
	DisplayName string // Human readable name
	Description string
	build       Builder
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Description: "White sphere ringed by small colored spheres on a yellow ground",
		build:       NewDefaultScene,
	},
	{
		ID:          "mirrors",
		Description: "Two facing mirror spheres reflecting each other to the depth limit",
		build:       NewMirrorsScene,
	},
	{
		ID:          "glass",
		Description: "Clear, tinted and frosted glass spheres and ellipsoids",
		build:       NewGlassScene,
	},
	{
		ID:          "metals",
		Description: "Copper ellipsoids from polished to rough",
		build:       NewMetalsScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	for i := range scenes {
		scenes[i].DisplayName = titleCase(scenes[i].ID)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// SceneNames returns the IDs of the built-in scenes, sorted
func SceneNames() []string {
	var names []string
	for _, info := range ListScenes() {
		names = append(names, info.ID)
	}
	return names
}

// NewByName builds the built-in scene with the given ID. Matching ignores case.
func NewByName(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	for _, info := range builtInScenes {
		if info.ID == id {
			return info.build(cameraOverrides...)
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(SceneNames(), ", "))
}

// titleCase converts an ID-style string to title case
// e.g., "glass-balls" -> "Glass Balls"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
