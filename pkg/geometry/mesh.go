package geometry

import (
	"fmt"
	"path/filepath"

	"github.com/df07/luminara/pkg/core"
	"github.com/udhos/gwob"
)

// MeshOptions controls how a Wavefront OBJ mesh is turned into triangles
type MeshOptions struct {
	Material    core.MaterialID // Material shared by every triangle
	BackCulling bool            // Back-face culling flag for every triangle
	Scale       float64         // Uniform scale applied to positions (0 = 1)
	Offset      core.Vec3       // Translation applied after scaling
	Logger      core.Logger     // Receives parser statistics when set

	// Resolve maps an MTL material name and its diffuse color to a scene
	// material. When nil, or for faces without a usemtl, Material is used.
	Resolve func(name string, diffuse core.Vec3) core.MaterialID
}

// LoadOBJ reads a Wavefront OBJ file and returns its faces as triangles.
// Vertex normals from the file are used when present, otherwise each
// triangle gets its face normal.
func LoadOBJ(path string, options MeshOptions) ([]*Triangle, error) {
	obj, err := gwob.NewObjFromFile(path, parserOptions(options))
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ file %s: %w", path, err)
	}

	lib := gwob.NewMaterialLib()
	if options.Resolve != nil && obj.Mtllib != "" {
		// Material libraries are usually next to the OBJ file
		lib, err = gwob.ReadMaterialLibFromFile(filepath.Join(filepath.Dir(path), obj.Mtllib), parserOptions(options))
		if err != nil {
			lib, err = gwob.ReadMaterialLibFromFile(obj.Mtllib, parserOptions(options))
			if err != nil {
				return nil, fmt.Errorf("failed to load material library %s: %w", obj.Mtllib, err)
			}
		}
	}
	return trianglesFromObj(obj, faceMaterials(obj, lib, options), options)
}

// ParseOBJ parses Wavefront OBJ data held in memory
func ParseOBJ(name string, data []byte, options MeshOptions) ([]*Triangle, error) {
	obj, err := gwob.NewObjFromBuf(name, data, parserOptions(options))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ data %s: %w", name, err)
	}
	return trianglesFromObj(obj, nil, options)
}

func parserOptions(options MeshOptions) *gwob.ObjParserOptions {
	parserOpts := &gwob.ObjParserOptions{IgnoreNormals: false}
	if options.Logger != nil {
		logger := options.Logger
		parserOpts.LogStats = true
		parserOpts.Logger = func(msg string) { logger.Printf("%s\n", msg) }
	}
	return parserOpts
}

// faceMaterials returns the material of every face, indexed by its first
// index position, or nil when every face uses the default material
func faceMaterials(obj *gwob.Obj, lib gwob.MaterialLib, options MeshOptions) map[int]core.MaterialID {
	if options.Resolve == nil || len(lib.Lib) == 0 {
		return nil
	}

	materials := make(map[int]core.MaterialID)
	resolved := make(map[string]core.MaterialID)
	for _, g := range obj.Groups {
		mtl, exists := lib.Lib[g.Usemtl]
		if !exists {
			continue
		}
		id, seen := resolved[g.Usemtl]
		if !seen {
			diffuse := core.NewVec3(float64(mtl.Kd[0]), float64(mtl.Kd[1]), float64(mtl.Kd[2]))
			id = options.Resolve(g.Usemtl, diffuse)
			resolved[g.Usemtl] = id
		}
		for f := g.IndexBegin; f < g.IndexBegin+g.IndexCount; f += 3 {
			materials[f] = id
		}
	}
	return materials
}

func trianglesFromObj(obj *gwob.Obj, materials map[int]core.MaterialID, options MeshOptions) ([]*Triangle, error) {
	if len(obj.Indices)%3 != 0 {
		return nil, fmt.Errorf("OBJ index count %d is not a multiple of 3", len(obj.Indices))
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	// Strides and offsets are in bytes of float32
	stride := obj.StrideSize / 4
	positionOffset := obj.StrideOffsetPosition / 4
	normalOffset := obj.StrideOffsetNormal / 4

	readVec3 := func(index, offset int) core.Vec3 {
		base := stride*index + offset
		return core.NewVec3(obj.Coord64(base), obj.Coord64(base+1), obj.Coord64(base+2))
	}

	triangles := make([]*Triangle, 0, len(obj.Indices)/3)
	for f := 0; f < len(obj.Indices); f += 3 {
		var vertices, normals [3]core.Vec3
		for k := 0; k < 3; k++ {
			index := obj.Indices[f+k]
			vertices[k] = readVec3(index, positionOffset).Multiply(scale).Add(options.Offset)
			if obj.NormCoordFound {
				normals[k] = readVec3(index, normalOffset).Normalize()
			}
		}

		if !obj.NormCoordFound {
			n := FaceNormal(vertices[0], vertices[1], vertices[2])
			normals = [3]core.Vec3{n, n, n}
		}

		material := options.Material
		if id, ok := materials[f]; ok {
			material = id
		}
		triangles = append(triangles, NewTriangle(vertices, normals, material, options.BackCulling))
	}

	return triangles, nil
}
