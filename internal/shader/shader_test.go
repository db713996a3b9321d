package shader

import (
	"strings"
	"testing"
)

func TestCompileEmbedded(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			words, err := Compile(name)
			if err != nil {
				t.Fatalf("Compile(%q): %+v", name, err)
			}
			if len(words) < 5 {
				t.Fatalf("expected a spir-v header, got %d words", len(words))
			}
			if words[0] != 0x07230203 {
				t.Errorf("magic = %#08x", words[0])
			}
		})
	}
}

func TestSourcesDefineEntryPoints(t *testing.T) {
	for _, name := range Names {
		src, err := Source(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, entry := range []string{VertexEntry, FragmentEntry} {
			if !strings.Contains(src, "fn "+entry+"(") {
				t.Errorf("%s does not define %s", name, entry)
			}
		}
	}
}

func TestCompileUnknown(t *testing.T) {
	_, err := Compile("teapot")
	if err == nil {
		t.Fatal("expected an error for an unknown shader")
	}
	if !strings.Contains(err.Error(), "teapot") {
		t.Errorf("error %q does not name the shader", err)
	}
}

func TestCompileSourceError(t *testing.T) {
	_, err := CompileSource("broken", "@vertex fn vs_main( -> {")
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not name the shader", err)
	}
}
