// Package mesh loads flat geometry from Wavefront OBJ files.
package mesh

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a 2D position with a texture coordinate. The layout matches the
// MVP shader's vertex input.
type Vertex struct {
	Position mgl32.Vec2
	TexCoord mgl32.Vec2
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

type vertexKey struct {
	position int
	uv       int
}

// Load decodes an OBJ stream and its material library. Polygons are fanned
// into triangles and the z coordinate is dropped. Texture coordinates are
// used as written.
func Load(objReader, mtlReader io.Reader) (*Mesh, error) {
	decoder, err := obj.DecodeReader(objReader, mtlReader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode obj")
	}

	m := &Mesh{}
	unique := make(map[vertexKey]uint16)

	for _, decodedObj := range decoder.Objects {
		for _, face := range decodedObj.Faces {
			for i := 2; i < len(face.Vertices); i++ {
				for _, corner := range [3]int{0, i - 1, i} {
					if err := m.addVertex(decoder, unique, face, corner); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	if len(m.Indices) == 0 {
		return nil, errors.New("obj contains no faces")
	}

	return m, nil
}

func (m *Mesh) addVertex(decoder *obj.Decoder, unique map[vertexKey]uint16, face obj.Face, corner int) error {
	key := vertexKey{position: face.Vertices[corner], uv: -1}
	if corner < len(face.Uvs) && face.Uvs[corner] >= 0 && face.Uvs[corner]*2+1 < len(decoder.Uvs) {
		key.uv = face.Uvs[corner]
	}

	index, exists := unique[key]
	if !exists {
		if key.position < 0 || key.position*3+1 >= len(decoder.Vertices) {
			return errors.Newf("face references missing vertex %d", key.position)
		}
		if len(m.Vertices) > math.MaxUint16 {
			return errors.Newf("mesh has more than %d unique vertices", math.MaxUint16+1)
		}

		vert := Vertex{Position: mgl32.Vec2{
			decoder.Vertices[key.position*3],
			decoder.Vertices[key.position*3+1],
		}}
		if key.uv >= 0 {
			vert.TexCoord = mgl32.Vec2{
				decoder.Uvs[key.uv*2],
				decoder.Uvs[key.uv*2+1],
			}
		}

		index = uint16(len(m.Vertices))
		m.Vertices = append(m.Vertices, vert)
		unique[key] = index
	}

	m.Indices = append(m.Indices, index)
	return nil
}
