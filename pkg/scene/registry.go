package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a scene that can be created by ID
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`               // "builtin" or "obj"
	FilePath    string `json:"filePath,omitempty"` // OBJ path (obj type only)
}

// Options tune scene creation
type Options struct {
	MeshPath string // OBJ file for the mesh scene; DefaultMeshPath when empty
}

type builtinScene struct {
	info   SceneInfo
	create func(opts Options) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "solid", Name: "Solid Colors", Description: "Flat colored spheres and planes, no lighting"},
		create: func(Options) (*Scene, error) {
			return NewSolidColorScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "spheres", Name: "Spheres", Description: "Grid of flat colored spheres with one point light"},
		create: func(Options) (*Scene, error) {
			return NewSpheresScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "materials", Name: "Materials", Description: "Cook-Torrance metals and plastics next to Lambert-Phong spheres"},
		create: func(Options) (*Scene, error) {
			return NewMaterialsScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "reference", Name: "Reference", Description: "Cook-Torrance spheres and animated triangles in each cull mode"},
		create: func(Options) (*Scene, error) {
			return NewReferenceScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "mesh", Name: "Mesh", Description: "Rotating OBJ mesh in a lit room"},
		create: func(opts Options) (*Scene, error) {
			return NewMeshScene(opts.MeshPath)
		},
	},
	{
		info: SceneInfo{ID: "single-sphere", Name: "Single Sphere", Description: "One diffuse sphere and one point light"},
		create: func(Options) (*Scene, error) {
			return NewSingleSphereScene(), nil
		},
	},
}

// List returns the built-in scenes followed by OBJ files found in the resources directory
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	objScenes, err := ListOBJScenes()
	if err == nil {
		scenes = append(scenes, objScenes...)
	}
	return scenes
}

// ListOBJScenes scans the resources directory for OBJ models
func ListOBJScenes() ([]SceneInfo, error) {
	// Try different possible paths for the resources directory
	possiblePaths := []string{"resources", "../resources", "../../resources"}
	var resourcesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			resourcesDir = path
			break
		}
	}

	if resourcesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(resourcesDir, "*.obj"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan resources directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          "obj:" + name,
			Name:        titleCase(name),
			Description: fmt.Sprintf("Mesh scene with %s", filepath.Base(filePath)),
			Type:        "obj",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// Create builds a scene by ID. IDs of the form "obj:<name>" load the matching
// OBJ file from the resources directory into the mesh scene.
func Create(id string, opts Options) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.create(opts)
		}
	}

	if name, ok := strings.CutPrefix(id, "obj:"); ok {
		objScenes, err := ListOBJScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range objScenes {
			if strings.TrimPrefix(info.ID, "obj:") == name {
				s, err := NewMeshScene(info.FilePath)
				if err != nil {
					return nil, err
				}
				s.Name = id
				return s, nil
			}
		}
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "lowpoly-bunny" -> "Lowpoly Bunny"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
