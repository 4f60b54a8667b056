// Package model loads Wavefront OBJ meshes, grounded in model.go's
// LoadModel function: a hand-rolled scanner reading "v"/"vn"/"vt"/"f"
// records with fmt.Fscanf, building one Triangle per face. Unlike
// LoadModel, which panics on any read failure, Load returns an error. OBJ
// loading is a genuine I/O boundary, the one place in this module where
// errors are idiomatic; internal/raster and friends stay infallible by
// construction.
package model

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is one face's resolved attribute data: positions, texture
// coordinates and normals, indexed the same way across all three arrays.
type Triangle struct {
	Positions [3]mgl32.Vec3
	UVs       [3]mgl32.Vec2
	Normals   [3]mgl32.Vec3
}

// Mesh is the flattened triangle list Load produces, ready for the
// transform/clip stage (internal/upstream).
type Mesh []Triangle

// Load parses path as a Wavefront OBJ file. Only triangulated faces
// ("f a/b/c a/b/c a/b/c") are supported, matching LoadModel.
func Load(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	var positions, uvs, normals []mgl32.Vec3
	var posIdx, uvIdx, normIdx [][3]int

	for {
		var lineType string
		if _, err := fmt.Fscanf(f, "%s", &lineType); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("model: reading %s: %w", path, err)
		}

		switch lineType {
		case "v":
			var v mgl32.Vec3
			if _, err := fmt.Fscanf(f, "%f %f %f\n", &v[0], &v[1], &v[2]); err != nil {
				return nil, fmt.Errorf("model: bad vertex in %s: %w", path, err)
			}
			positions = append(positions, v)
		case "vn":
			var v mgl32.Vec3
			if _, err := fmt.Fscanf(f, "%f %f %f\n", &v[0], &v[1], &v[2]); err != nil {
				return nil, fmt.Errorf("model: bad normal in %s: %w", path, err)
			}
			normals = append(normals, v)
		case "vt":
			var v mgl32.Vec3
			if _, err := fmt.Fscanf(f, "%f %f\n", &v[0], &v[1]); err != nil {
				return nil, fmt.Errorf("model: bad texcoord in %s: %w", path, err)
			}
			uvs = append(uvs, v)
		case "f":
			var p, u, n [3]int
			matches, _ := fmt.Fscanf(f, "%d/%d/%d %d/%d/%d %d/%d/%d\n",
				&p[0], &u[0], &n[0], &p[1], &u[1], &n[1], &p[2], &u[2], &n[2])
			if matches != 9 {
				return nil, fmt.Errorf("model: face in %s is not a triangulated v/vt/vn triple", path)
			}
			posIdx = append(posIdx, p)
			uvIdx = append(uvIdx, u)
			normIdx = append(normIdx, n)
		}
	}

	mesh := make(Mesh, len(posIdx))
	for i := range posIdx {
		for k := 0; k < 3; k++ {
			mesh[i].Positions[k] = positions[posIdx[i][k]-1]
			uv := uvs[uvIdx[i][k]-1]
			mesh[i].UVs[k] = mgl32.Vec2{uv[0], uv[1]}
			mesh[i].Normals[k] = normals[normIdx[i][k]-1]
		}
	}
	return mesh, nil
}
