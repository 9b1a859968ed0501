package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/almare/zerocut/internal/geometry"
)

func TestWriteDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.dxf")
	pat := buildTestPattern(t)

	if err := WriteDXF(path, pat); err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	content := string(data)

	for _, name := range []string{
		geometry.LayerCollar, geometry.LayerFacing, geometry.LayerSleeve,
		geometry.LayerBodice, geometry.LayerSeam, geometry.LayerEncap,
	} {
		if !strings.Contains(content, name) {
			t.Errorf("expected layer %s in DXF output", name)
		}
	}
	if !strings.Contains(content, "LWPOLYLINE") {
		t.Error("expected LWPOLYLINE entities")
	}
	if !strings.Contains(content, "LINE") {
		t.Error("expected LINE entities")
	}
}

func TestWriteDXF_EmptyPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	pat := geometry.Pattern{SubjectID: "none", Width: 10, Height: 10}

	// A pattern with no layers still produces a valid, empty drawing.
	if err := WriteDXF(path, pat); err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
}
