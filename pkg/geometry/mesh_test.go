package geometry

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/luminara/pkg/core"
)

const quadWithNormals = `# unit quad in the XY plane
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 0 1
f 1//1 2//1 3//1
f 2//1 4//1 3//1
`

const triangleWithoutNormals = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParseOBJ_WithNormals(t *testing.T) {
	triangles, err := ParseOBJ("quad", []byte(quadWithNormals), MeshOptions{Material: 4, BackCulling: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(triangles) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(triangles))
	}

	for i, tri := range triangles {
		if tri.Material != 4 || !tri.BackCulling {
			t.Errorf("Triangle %d lost its options: %+v", i, tri)
		}
		for k, n := range tri.Normals {
			if n.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-6 {
				t.Errorf("Triangle %d normal %d: expected +Z, got %v", i, k, n)
			}
		}
	}

	// A ray from the front hits the quad through its culling triangles
	ray := core.NewRay(core.NewVec3(0.75, 0.75, 1), core.NewVec3(0, 0, -1))
	hit, isHit := NewHittableList(shapesOf(triangles)...).Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected the quad to be hit")
	}
	if math.Abs(hit.T-1) > 1e-6 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
}

func TestParseOBJ_FaceNormalFallback(t *testing.T) {
	options := MeshOptions{Scale: 2, Offset: core.NewVec3(0, 0, -5)}
	triangles, err := ParseOBJ("tri", []byte(triangleWithoutNormals), options)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(triangles) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(triangles))
	}

	tri := triangles[0]
	expectedVertices := [3]core.Vec3{
		core.NewVec3(0, 0, -5),
		core.NewVec3(2, 0, -5),
		core.NewVec3(0, 2, -5),
	}
	for k := range expectedVertices {
		if tri.Vertices[k].Subtract(expectedVertices[k]).Length() > 1e-6 {
			t.Errorf("Vertex %d: expected %v, got %v", k, expectedVertices[k], tri.Vertices[k])
		}
		if tri.Normals[k].Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
			t.Errorf("Normal %d: expected face normal +Z, got %v", k, tri.Normals[k])
		}
	}
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	_, err := LoadOBJ("testdata/does-not-exist.obj", MeshOptions{})
	if err == nil {
		t.Error("Expected error for missing OBJ file")
	}
}

func TestLoadOBJ_MaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	obj := "mtllib tri.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\ng tri\nusemtl red\nf 1 2 3\n"
	mtl := "newmtl red\nKd 1 0 0\n"
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0o644); err != nil {
		t.Fatalf("Failed to write OBJ file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tri.mtl"), []byte(mtl), 0o644); err != nil {
		t.Fatalf("Failed to write MTL file: %v", err)
	}

	var resolvedName string
	var resolvedDiffuse core.Vec3
	options := MeshOptions{
		Material: 1,
		Resolve: func(name string, diffuse core.Vec3) core.MaterialID {
			resolvedName, resolvedDiffuse = name, diffuse
			return 7
		},
	}

	triangles, err := LoadOBJ(filepath.Join(dir, "tri.obj"), options)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(triangles) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(triangles))
	}
	if resolvedName != "red" || !resolvedDiffuse.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected red diffuse material, got %q %v", resolvedName, resolvedDiffuse)
	}
	if triangles[0].Material != 7 {
		t.Errorf("Expected resolved material 7, got %d", triangles[0].Material)
	}
}

func shapesOf(triangles []*Triangle) []Shape {
	shapes := make([]Shape, len(triangles))
	for i, tri := range triangles {
		shapes[i] = tri
	}
	return shapes
}
