package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// toRL converts a model-space vector to raylib's float32 vector
func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// meshData is the CPU side of a mesh with baked lighting
type meshData struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
}

// bakeMesh flattens the model into per-vertex arrays. Colours carry a simple
// diffuse light so the default material needs no shader.
func bakeMesh(model *stl.Model) meshData {
	vertexCount := len(model.Triangles) * 3
	d := meshData{
		vertices:  make([]float32, 0, vertexCount*3),
		normals:   make([]float32, 0, vertexCount*3),
		texcoords: make([]float32, 0, vertexCount*2),
		colors:    make([]uint8, 0, vertexCount*4),
	}

	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()
	uvs := [3][2]float32{{0, 0}, {1, 0}, {0, 1}}

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Min 30% ambient, max 100% diffuse
		light := math.Max(0.3, -normal.Dot(lightDir))
		const base = 200.0
		r := uint8(base * light * 0.5)
		g := uint8(base * light * 0.6)
		b := uint8(base * light)

		for i, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			d.vertices = append(d.vertices, float32(v.X), float32(v.Y), float32(v.Z))
			d.normals = append(d.normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			d.texcoords = append(d.texcoords, uvs[i][0], uvs[i][1])
			d.colors = append(d.colors, r, g, b, 255)
		}
	}
	return d
}

// stlToRaylibMesh uploads the model as a raylib mesh; main thread only
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	d := bakeMesh(model)

	mesh := rl.Mesh{
		VertexCount:   int32(len(d.vertices) / 3),
		TriangleCount: int32(len(model.Triangles)),
	}
	if len(d.vertices) == 0 {
		return mesh
	}

	mesh.Vertices = &d.vertices[0]
	mesh.Normals = &d.normals[0]
	mesh.Texcoords = &d.texcoords[0]
	mesh.Colors = &d.colors[0]

	rl.UploadMesh(&mesh, false)
	return mesh
}
