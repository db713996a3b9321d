package mesh

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testMaterials = `newmtl flat
Ka 1.000 1.000 1.000
Kd 1.000 1.000 1.000
Ks 0.000 0.000 0.000
d 1.0
illum 1
`

const quadOBJ = `mtllib quad.mtl
o quad
v 25.0 25.0 0.0
v 225.0 25.0 0.0
v 225.0 225.0 0.0
v 25.0 225.0 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 1.0 1.0
vt 0.0 1.0
usemtl flat
f 1/1 2/2 3/3 4/4
`

func load(t *testing.T, src string) (*Mesh, error) {
	t.Helper()
	return Load(strings.NewReader(src), strings.NewReader(testMaterials))
}

func TestLoadQuad(t *testing.T) {
	m, err := load(t, quadOBJ)
	if err != nil {
		t.Fatalf("Load: %+v", err)
	}

	if len(m.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(m.Vertices))
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	if len(m.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", m.Indices, want)
	}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}

	if m.Vertices[2].Position != (mgl32.Vec2{225, 225}) {
		t.Errorf("third vertex at %v", m.Vertices[2].Position)
	}
	if m.Vertices[2].TexCoord != (mgl32.Vec2{1, 1}) {
		t.Errorf("third uv = %v", m.Vertices[2].TexCoord)
	}
}

func TestLoadFansPolygons(t *testing.T) {
	m, err := load(t, `mtllib p.mtl
o pentagon
v 0 0 0
v 1 0 0
v 2 1 0
v 1 2 0
v 0 1 0
usemtl flat
f 1 2 3 4 5
`)
	if err != nil {
		t.Fatalf("Load: %+v", err)
	}

	if len(m.Indices) != 9 {
		t.Errorf("got %d indices, want 9", len(m.Indices))
	}
	if len(m.Vertices) != 5 {
		t.Errorf("got %d vertices, want 5", len(m.Vertices))
	}
	for _, v := range m.Vertices {
		if v.TexCoord != (mgl32.Vec2{}) {
			t.Errorf("vertex without uv has %v", v.TexCoord)
		}
	}
}

func TestLoadSharesVertices(t *testing.T) {
	m, err := load(t, `mtllib t.mtl
o pair
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl flat
f 1/1 2/2 3/3
f 1/1 3/3 4/4
`)
	if err != nil {
		t.Fatalf("Load: %+v", err)
	}

	if len(m.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4 shared between both triangles", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Errorf("got %d indices, want 6", len(m.Indices))
	}
}

func TestLoadWithoutFaces(t *testing.T) {
	_, err := load(t, "o empty\nv 0 0 0\n")
	if err == nil {
		t.Fatal("expected an error for an obj without faces")
	}
}

// fanOBJ builds a triangle fan over n distinct positions, so every position
// becomes its own vertex.
func fanOBJ(n int) string {
	var b strings.Builder
	b.WriteString("mtllib fan.mtl\no fan\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "v %d %d 0\n", i%1024, i/1024)
	}
	b.WriteString("usemtl flat\n")
	for k := 2; k < n; k++ {
		fmt.Fprintf(&b, "f 1 %d %d\n", k, k+1)
	}
	return b.String()
}

func TestLoadVertexLimit(t *testing.T) {
	tests := []struct {
		vertices int
		fails    bool
	}{
		{65535, false},
		{65536, false},
		{65537, true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.vertices), func(t *testing.T) {
			m, err := load(t, fanOBJ(test.vertices))
			if test.fails {
				if err == nil {
					t.Fatalf("loaded %d vertices, want an error", len(m.Vertices))
				}
				if !strings.Contains(err.Error(), "more than 65536 unique vertices") {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load: %+v", err)
			}
			if len(m.Vertices) != test.vertices {
				t.Errorf("got %d vertices, want %d", len(m.Vertices), test.vertices)
			}
			if last := m.Indices[len(m.Indices)-1]; int(last) != test.vertices-1 {
				t.Errorf("last index = %d, want %d", last, test.vertices-1)
			}
		})
	}
}
