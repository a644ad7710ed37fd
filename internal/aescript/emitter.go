// Package aescript projects a parameter set into an After Effects
// ExtendScript program that rebuilds the particle ring inside the host.
//
// Every tunable parameter becomes a named control on a guide null layer and
// the particle effect reads those controls through expressions, so the
// imported result stays tunable inside the host. Whether the host has the
// Deep Glow plugin is only known when the script runs; the emitted program
// carries both variants and picks one at its own runtime.
package aescript

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/iburimskiy/particle-ring/internal/config"
)

const (
	ControlLayer = "Effect Controls (UI)"
	CompPrefix   = "AE_Particle_Ring_"
	UndoGroup    = "Create AE Particle Ring"
	SolidName    = "Particle Ring"
	ParticleFx   = "CC Particle World"
)

var groupTitles = map[int]string{
	1: "Circle",
	2: "Fractal Noise",
	3: "Colors",
	4: "Particles & Camera",
	5: "Glow",
}

// Options are the composition settings of the emitted program.
type Options struct {
	// Suffix makes the composition name unique across imports into one
	// project. Empty picks a random number in 0-999.
	Suffix string

	Width     int
	Height    int
	Duration  float64 // seconds
	FrameRate float64
}

func DefaultOptions() Options {
	return Options{
		Width:     1920,
		Height:    1080,
		Duration:  10,
		FrameRate: 30,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Duration <= 0 {
		o.Duration = d.Duration
	}
	if o.FrameRate <= 0 {
		o.FrameRate = d.FrameRate
	}
	if o.Suffix == "" {
		o.Suffix = strconv.Itoa(rand.IntN(1000))
	}
	return o
}

// CompName returns the top-level program identifier for suffix.
func CompName(suffix string) string {
	return CompPrefix + suffix
}

// Emit returns the complete program text for p. It never fails: p is
// sanitized first and every capability question is deferred to the host.
func Emit(p config.Params, opts Options) string {
	p = p.Sanitize()
	opts = opts.withDefaults()

	e := &emitter{}
	e.header(opts)
	e.controls(p)
	e.camera(p)
	e.particles()
	e.glow()
	e.footer()
	return e.b.String()
}

type emitter struct {
	b strings.Builder
}

func (e *emitter) linef(indent int, format string, args ...any) {
	e.b.WriteString(strings.Repeat("    ", indent))
	fmt.Fprintf(&e.b, format, args...)
	e.b.WriteByte('\n')
}

func (e *emitter) blank() {
	e.b.WriteByte('\n')
}

func (e *emitter) section(title string) {
	e.blank()
	e.linef(1, "// =========================================================")
	e.linef(1, "// %s", title)
	e.linef(1, "// =========================================================")
}

func (e *emitter) header(o Options) {
	e.linef(0, "(function() {")
	e.linef(1, "app.beginUndoGroup(%s);", quote(UndoGroup))
	e.blank()
	e.linef(1, "var compWidth = %d;", o.Width)
	e.linef(1, "var compHeight = %d;", o.Height)
	e.linef(1, "var compDuration = %s;", FormatNumber(o.Duration))
	e.linef(1, "var compFrameRate = %s;", FormatNumber(o.FrameRate))
	e.blank()
	e.linef(1, "var comp = app.project.items.addComp(%s, compWidth, compHeight, 1, compDuration, compFrameRate);", quote(CompName(o.Suffix)))
	e.linef(1, "comp.openInViewer();")
}

func (e *emitter) controls(p config.Params) {
	e.section("Control layer")
	e.linef(1, "var ctrl = comp.layers.addNull();")
	e.linef(1, "ctrl.name = %s;", quote(ControlLayer))
	e.linef(1, "ctrl.label = 11;")
	e.linef(1, "ctrl.guideLayer = true;")
	e.blank()
	e.linef(1, "function addSlider(name, val) {")
	e.linef(2, "var s = ctrl.Effects.addProperty(\"ADBE Slider Control\");")
	e.linef(2, "s.name = name;")
	e.linef(2, "s.property(1).setValue(val);")
	e.linef(1, "}")
	e.blank()
	e.linef(1, "function addColor(name, rgba) {")
	e.linef(2, "var c = ctrl.Effects.addProperty(\"ADBE Color Control\");")
	e.linef(2, "c.name = name;")
	e.linef(2, "c.property(1).setValue(rgba);")
	e.linef(1, "}")

	group := 0
	for _, c := range Units {
		if c.Group != group {
			group = c.Group
			e.blank()
			e.linef(1, "// --- %d. %s ---", group, groupTitles[group])
		}
		switch c.Kind {
		case KindColor:
			e.linef(1, "addColor(%s, %s);", quote(c.Name()), formatColor(c.Endpoint(p)))
		default:
			e.linef(1, "addSlider(%s, %s);", quote(c.Name()), FormatNumber(c.Value(p)))
		}
	}
}

func (e *emitter) camera(p config.Params) {
	zoom := mustLookup(config.FieldCameraZoom)

	e.section("Camera")
	e.linef(1, "var camera = comp.layers.addCamera(\"Camera 1\", [compWidth/2, compHeight/2]);")
	e.linef(1, "camera.property(\"Position\").setValue([compWidth/2, compHeight/2, -%s]);", FormatNumber(zoom.Value(p)))
	e.linef(1, "camera.property(\"Position\").expression =")
	e.linef(2, "%s;", quote("[thisComp.width/2, thisComp.height/2, -"+ref(zoom)+"]"))
}

func (e *emitter) particles() {
	radius := ref(mustLookup(config.FieldRadius))
	thickness := ref(mustLookup(config.FieldThickness))
	velocity := ref(mustLookup(config.FieldSpeed))
	birthRate := ref(mustLookup(config.FieldCount))
	size := ref(mustLookup(config.FieldSize))
	evolution := ref(mustLookup(config.FieldNoiseSpeed))
	noiseScale := ref(mustLookup(config.FieldNoiseStrength))
	gravity := ref(controlByLabel("Gravity (重力)"))
	colorA := ref(controlByLabel("Color A (主色)"))
	colorB := ref(controlByLabel("Color B (辅色)"))

	e.section("Particle layer")
	e.linef(1, "var solid = comp.layers.addSolid([0,0,0], %s, compWidth, compHeight, 1);", quote(SolidName))
	e.linef(1, "var pw = solid.Effects.addProperty(%s);", quote(ParticleFx))
	e.blank()

	e.linef(1, "// Ring geometry: X/Z radius follow the ring radius, Y the thickness")
	e.linef(1, "var rExpr = %s;", quote(radius+" / 100"))
	e.linef(1, "pw.property(\"Producer\").property(\"Radius X\").expression = rExpr;")
	e.linef(1, "pw.property(\"Producer\").property(\"Radius Z\").expression = rExpr;")
	e.expr(`pw.property("Producer").property("Radius Y")`, thickness+" / 100")
	e.blank()

	e.linef(1, "// Physics")
	e.linef(1, "pw.property(\"Physics\").property(\"Animation\").setValue(4); // Vortex")
	e.expr(`pw.property("Physics").property("Velocity")`, velocity)
	e.expr(`pw.property("Physics").property("Gravity")`, gravity)
	e.expr(`pw.property("Birth Rate")`, birthRate)
	e.blank()

	e.linef(1, "// Particles")
	e.linef(1, "pw.property(\"Particle\").property(\"Particle Type\").setValue(1); // Faded Sphere")
	e.expr(`pw.property("Particle").property("Birth Size")`, size+" / 10")
	e.expr(`pw.property("Particle").property("Death Size")`, "0")
	e.expr(`pw.property("Particle").property("Birth Color")`, colorA)
	e.expr(`pw.property("Particle").property("Death Color")`, colorB)
	e.blank()

	e.linef(1, "// Fractal noise stand-in: extra angle drift and resistance")
	e.expr(`pw.property("Physics").property("Extra Angle")`, "time * "+evolution+" * 10")
	e.expr(`pw.property("Physics").property("Resistance")`, noiseScale+" / 10")
}

func (e *emitter) expr(target, expression string) {
	e.linef(1, "%s.expression =", target)
	e.linef(2, "%s;", quote(expression))
}

func (e *emitter) footer() {
	e.blank()
	e.linef(1, "app.endUndoGroup();")
	e.linef(0, "})();")
}

// ref builds the expression that reads control c from the control layer.
func ref(c Control) string {
	prop := "Slider"
	if c.Kind == KindColor {
		prop = "Color"
	}
	return fmt.Sprintf("thisComp.layer('%s').effect('%s')('%s')",
		escapeSingle(ControlLayer), escapeSingle(c.Name()), prop)
}

func escapeSingle(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// quote renders s as a double-quoted script string literal.
func quote(s string) string {
	return strconv.Quote(s)
}
