package scene

import (
	"fmt"
	"sort"

	"github.com/df07/luminara/pkg/core"
)

// Options selects the parameters shared by all built-in scenes
type Options struct {
	AspectRatio float64     // Image width / height
	Seed        int64       // Seed for randomized scene layouts
	Mesh        MeshConfig  // Mesh scene settings
	Logger      core.Logger // Optional logger for scene construction
}

// DefaultAspectRatio is the aspect ratio used when Options leaves it unset
const DefaultAspectRatio = 16.0 / 9.0

type builder func(options Options) (*Scene, error)

var builders = map[string]builder{
	"simple": func(options Options) (*Scene, error) {
		return NewSimpleScene(options.AspectRatio), nil
	},
	"book-cover": func(options Options) (*Scene, error) {
		return NewBookCoverScene(options.AspectRatio, core.NewSeededSampler(options.Seed, 0)), nil
	},
	"mesh": func(options Options) (*Scene, error) {
		mesh := options.Mesh
		if mesh.Logger == nil {
			mesh.Logger = options.Logger
		}
		return NewMeshScene(options.AspectRatio, mesh)
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a built-in scene by name
func New(name string, options Options) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	if options.AspectRatio <= 0 {
		options.AspectRatio = DefaultAspectRatio
	}

	s, err := build(options)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q is invalid: %w", name, err)
	}
	return s, nil
}
