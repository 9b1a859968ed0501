package export

import (
	"fmt"
	"strings"
	"testing"

	"github.com/almare/zerocut/internal/geometry"
	"github.com/almare/zerocut/internal/model"
)

func buildTestPattern(t *testing.T) geometry.Pattern {
	t.Helper()
	cfg := model.DefaultConfig()
	params := model.PatternParameters{SubjectID: "s1", Width: 135, Height: 97.5}
	pat, err := geometry.BuildPattern(params, cfg.Template(model.BandIdeal), geometry.BuildOptions{
		IncludeSeamGuides: true,
		IncludeEncap:      true,
		EncapWidth:        cfg.EncapWidth,
	})
	if err != nil {
		t.Fatalf("BuildPattern failed: %v", err)
	}
	return pat
}

func TestSVGDocumentStructure(t *testing.T) {
	pat := buildTestPattern(t)
	svg := SVG(pat)

	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("expected XML declaration")
	}
	if !strings.Contains(svg, `width="137.5cm"`) {
		t.Error("expected document width to include the encap panel")
	}
	if !strings.Contains(svg, `height="97.5cm"`) {
		t.Error("expected document height in cm")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing svg tag")
	}
}

func TestSVGFlipsYAxis(t *testing.T) {
	pat := buildTestPattern(t)
	svg := SVG(pat)

	want := fmt.Sprintf(`transform="translate(0,%g) scale(1,-1)"`, pat.Height)
	if !strings.Contains(svg, want) {
		t.Errorf("expected y-flip group %s", want)
	}
}

func TestSVGLayerGroups(t *testing.T) {
	pat := buildTestPattern(t)
	svg := SVG(pat)

	for _, name := range []string{
		geometry.LayerCollar, geometry.LayerFacing, geometry.LayerSleeve,
		geometry.LayerBodice, geometry.LayerSeam, geometry.LayerEncap,
	} {
		if !strings.Contains(svg, fmt.Sprintf(`id="%s"`, name)) {
			t.Errorf("expected a group for layer %s", name)
		}
	}
}

func TestSVGPrimitiveTags(t *testing.T) {
	pat := buildTestPattern(t)
	svg := SVG(pat)

	// Collar rectangles are closed polylines.
	if !strings.Contains(svg, "<polygon") {
		t.Error("expected polygon tags for closed polylines")
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected line tags")
	}
	// Sleevehead curves come out as quadratic paths.
	if !strings.Contains(svg, " Q ") {
		t.Error("expected quadratic path commands")
	}
	// Facing arcs are flattened, never emitted as native A commands.
	if strings.Contains(svg, " A ") {
		t.Error("expected no native arc commands")
	}
}

func TestSVGSeamGuidesDashed(t *testing.T) {
	pat := buildTestPattern(t)
	svg := SVG(pat)
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("expected dashed style for seam guides")
	}
}
