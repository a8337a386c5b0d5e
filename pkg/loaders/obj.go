package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sixarne/raytracer/pkg/core"
)

// OBJData contains the triangle data read from a Wavefront OBJ file
type OBJData struct {
	Positions []core.Vec3 // Vertex positions
	Indices   []int       // Zero-based triangle indices (3 per triangle)
	Normals   []core.Vec3 // Face normals, one per triangle
}

// TriangleCount returns the number of triangles
func (d *OBJData) TriangleCount() int {
	return len(d.Indices) / 3
}

// LoadOBJ loads an OBJ file from disk
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ file %s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads vertex ("v") and face ("f") statements. Faces with more than
// three vertices are split into a triangle fan. Other statements are ignored.
func ParseOBJ(reader io.Reader) (*OBJData, error) {
	data := &OBJData{}
	scanner := bufio.NewScanner(reader)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			position, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			data.Positions = append(data.Positions, position)
		case "f":
			face, err := parseFace(fields[1:], len(data.Positions))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			for i := 1; i+1 < len(face); i++ {
				data.addTriangle(face[0], face[i], face[i+1])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}
	return data, nil
}

// addTriangle records the indices and the face normal of one triangle
func (d *OBJData) addTriangle(i0, i1, i2 int) {
	d.Indices = append(d.Indices, i0, i1, i2)

	v0, v1, v2 := d.Positions[i0], d.Positions[i1], d.Positions[i2]
	d.Normals = append(d.Normals, v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize())
}

func parseVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		coords[i] = value
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFace converts the 1-based (or negative, relative) position indices of a
// face into 0-based indices. Texture and normal references after '/' are ignored.
func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	face := make([]int, len(fields))
	for i, field := range fields {
		reference, _, _ := strings.Cut(field, "/")
		index, err := strconv.Atoi(reference)
		if err != nil {
			return nil, fmt.Errorf("invalid face index %q: %w", field, err)
		}

		switch {
		case index > 0:
			index--
		case index < 0:
			index += vertexCount
		default:
			return nil, fmt.Errorf("face index 0 is not valid")
		}

		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("face index %s out of range (%d vertices)", reference, vertexCount)
		}
		face[i] = index
	}
	return face, nil
}
