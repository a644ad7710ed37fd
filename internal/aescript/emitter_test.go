package aescript

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/iburimskiy/particle-ring/internal/config"
)

func fixed(suffix string) Options {
	o := DefaultOptions()
	o.Suffix = suffix
	return o
}

// TestScaledLiterals verifies every control carries its host-unit value
func TestScaledLiterals(t *testing.T) {
	script := Emit(config.Default(), fixed("1"))

	tests := []struct {
		name     string
		expected string
	}{
		{"radius x20", `addSlider("1-Radius (半径)", 90);`},
		{"thickness x10", `addSlider("1-Thickness (圆环厚度)", 10);`},
		{"noise strength x10", `addSlider("2-Noise Scale (杂色缩放)", 5);`},
		{"noise speed", `addSlider("2-Noise Evolution (演化速度)", 1);`},
		{"count /1000", `addSlider("4-Birth Rate (粒子数量)", 5);`},
		{"speed", `addSlider("4-Velocity (速度)", 1.5);`},
		{"gravity", `addSlider("4-Gravity (重力)", 0);`},
		{"size", `addSlider("4-Size (粒子大小)", 0.15);`},
		{"zoom x100", `addSlider("4-Camera Distance (摄像机距离)", 1400);`},
		{"glow radius x50", `addSlider("5-Glow Radius (发光半径)", 30);`},
		{"glow intensity", `addSlider("5-Glow Intensity (发光强度)", 1.5);`},
		{"threshold x100", `addSlider("5-Threshold (阈值)", 20);`},
		{"camera depth", `setValue([compWidth/2, compHeight/2, -1400]);`},
		{"color a", `addColor("3-Color A (主色)", [0.658823529,0.333333333,0.968627451,1]);`},
		{"color b", `addColor("3-Color B (辅色)", [0.231372549,0.509803922,0.964705882,1]);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(script, tt.expected) {
				t.Errorf("Expected script to contain %q", tt.expected)
			}
		})
	}
}

// TestUnitTable verifies the mapping factors
func TestUnitTable(t *testing.T) {
	p := config.Params{
		Radius: 2, Thickness: 3, NoiseStrength: 0.4, NoiseSpeed: 2.5,
		Count: 12500, Size: 0.3, Speed: 4, CameraZoom: 7,
		GlowRadius: 1.2, GlowIntensity: 2.2, GlowThreshold: 0.65,
	}

	tests := []struct {
		field    config.Field
		expected string
	}{
		{config.FieldRadius, "40"},
		{config.FieldThickness, "30"},
		{config.FieldNoiseStrength, "4"},
		{config.FieldNoiseSpeed, "2.5"},
		{config.FieldCount, "12.5"},
		{config.FieldSize, "0.3"},
		{config.FieldSpeed, "4"},
		{config.FieldCameraZoom, "700"},
		{config.FieldGlowRadius, "60"},
		{config.FieldGlowIntensity, "2.2"},
		{config.FieldGlowThreshold, "65"},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			c, ok := Lookup(tt.field)
			if !ok {
				t.Fatalf("Expected a control for %s", tt.field)
			}
			if got := FormatNumber(c.Value(p)); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

// TestControlNamesStable verifies names are unique and follow <group>-<label>
func TestControlNamesStable(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Units {
		name := c.Name()
		if seen[name] {
			t.Errorf("Duplicate control name %q", name)
		}
		seen[name] = true

		prefix := strconv.Itoa(c.Group) + "-"
		if !strings.HasPrefix(name, prefix) {
			t.Errorf("Expected %q to start with %q", name, prefix)
		}
	}

	// Every numeric parameter is exposed
	for f := range config.Ranges {
		if _, ok := Lookup(f); !ok {
			t.Errorf("Expected a control for %s", f)
		}
	}
}

// TestIdempotent verifies re-export only differs in the composition suffix
func TestIdempotent(t *testing.T) {
	p := config.Default()

	if Emit(p, fixed("7")) != Emit(p, fixed("7")) {
		t.Fatal("Expected identical output for identical params and suffix")
	}

	a := Emit(p, DefaultOptions())
	b := Emit(p, DefaultOptions())
	re := regexp.MustCompile(`AE_Particle_Ring_\d+`)
	if re.FindString(a) == "" {
		t.Fatal("Expected a composition name with a numeric suffix")
	}
	if re.ReplaceAllString(a, "X") != re.ReplaceAllString(b, "X") {
		t.Error("Expected outputs to match apart from the composition suffix")
	}
}

// TestRandomSuffixRange verifies the default suffix is 0-999
func TestRandomSuffixRange(t *testing.T) {
	re := regexp.MustCompile(`AE_Particle_Ring_(\d+)`)
	for i := 0; i < 50; i++ {
		m := re.FindStringSubmatch(Emit(config.Default(), Options{}))
		if m == nil {
			t.Fatal("Expected composition name in output")
		}
		n, _ := strconv.Atoi(m[1])
		if n < 0 || n > 999 {
			t.Fatalf("Expected suffix in 0-999, got %d", n)
		}
	}
}

// TestGlowFallback verifies the capability probe is baked into the program
func TestGlowFallback(t *testing.T) {
	script := Emit(config.Default(), fixed("1"))

	try := strings.Index(script, "try {")
	deep := strings.Index(script, `addProperty("Deep Glow")`)
	catch := strings.Index(script, "} catch (err) {")
	std := strings.Index(script, `addProperty("ADBE Glo2")`)
	rename := strings.Index(script, `glow.name = "Standard Glow (Deep Glow Missing)";`)

	if try < 0 || deep < 0 || catch < 0 || std < 0 || rename < 0 {
		t.Fatalf("Expected try/catch glow branches, got indexes try=%d deep=%d catch=%d std=%d rename=%d",
			try, deep, catch, std, rename)
	}
	if !(try < deep && deep < catch && catch < std && std < rename) {
		t.Error("Expected Deep Glow inside try and the standard glow inside catch")
	}

	for _, prop := range []string{"Radius", "Exposure", "Threshold", "Glow Radius", "Glow Intensity", "Glow Threshold"} {
		if !strings.Contains(script, `.property("`+prop+`").expression`) {
			t.Errorf("Expected glow property %q to be linked", prop)
		}
	}
}

// TestExpressionLinks verifies effect parameters reference controls by name
func TestExpressionLinks(t *testing.T) {
	script := Emit(config.Default(), fixed("1"))

	tests := []string{
		`var rExpr = "thisComp.layer('Effect Controls (UI)').effect('1-Radius (半径)')('Slider') / 100";`,
		`"thisComp.layer('Effect Controls (UI)').effect('1-Thickness (圆环厚度)')('Slider') / 100"`,
		`"thisComp.layer('Effect Controls (UI)').effect('4-Size (粒子大小)')('Slider') / 10"`,
		`"thisComp.layer('Effect Controls (UI)').effect('3-Color A (主色)')('Color')"`,
		`"time * thisComp.layer('Effect Controls (UI)').effect('2-Noise Evolution (演化速度)')('Slider') * 10"`,
		`"[thisComp.width/2, thisComp.height/2, -thisComp.layer('Effect Controls (UI)').effect('4-Camera Distance (摄像机距离)')('Slider')]"`,
		`"thisComp.layer('Effect Controls (UI)').effect('5-Threshold (阈值)')('Slider')"`,
	}
	for _, expected := range tests {
		if !strings.Contains(script, expected) {
			t.Errorf("Expected script to contain %s", expected)
		}
	}
}

// TestEmitDegenerateParams verifies out-of-range input still yields a program
func TestEmitDegenerateParams(t *testing.T) {
	p := config.Default()
	p.Count = -100
	p.Thickness = 0
	p.GlowThreshold = -1

	script := Emit(p, fixed("1"))
	if !strings.Contains(script, `addSlider("4-Birth Rate (粒子数量)", 0);`) {
		t.Error("Expected negative count clamped to 0")
	}
	if !strings.Contains(script, `addSlider("5-Threshold (阈值)", 0);`) {
		t.Error("Expected negative threshold clamped to 0")
	}
	if !strings.HasSuffix(script, "})();\n") {
		t.Error("Expected a complete program")
	}
}

// TestEmitExtremeParams verifies oversized input exports finite, uncapped values
func TestEmitExtremeParams(t *testing.T) {
	p := config.Default()
	p.Count = 500000
	p.Radius = math.Inf(1)
	p.CameraZoom = -3

	script := Emit(p, fixed("1"))
	for _, lit := range []string{
		`addSlider("4-Birth Rate (粒子数量)", 500);`,
		`addSlider("1-Radius (半径)", 20000000000);`,
		`addSlider("4-Camera Distance (摄像机距离)", 100);`,
	} {
		if !strings.Contains(script, lit) {
			t.Errorf("Expected %s in script", lit)
		}
	}
}

// TestEndToEndScenario checks the reference export
func TestEndToEndScenario(t *testing.T) {
	p := config.Default()
	p.Count = 5000
	p.Radius = 4.5
	p.Thickness = 1.0
	p.Color = config.MustHex("#a855f7")
	p.Color2 = config.MustHex("#3b82f6")
	p.GlowThreshold = 0.2

	script := Emit(p, Options{})
	for _, lit := range []string{`"1-Radius (半径)", 90)`, `"1-Thickness (圆环厚度)", 10)`, `"5-Threshold (阈值)", 20)`} {
		if !strings.Contains(script, lit) {
			t.Errorf("Expected literal %s", lit)
		}
	}
	if !strings.Contains(script, "ADBE Glo2") {
		t.Error("Expected fallback to the standard glow")
	}
}

// TestFormatNumber verifies literal rendering
func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{90, "90"},
		{0.1 + 0.2, "0.3"},
		{0.6 * 50, "30"},
		{0, "0"},
		{-0.0, "0"},
		{1.5, "1.5"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.expected {
			t.Errorf("Expected %s for %v, got %s", tt.expected, tt.in, got)
		}
	}
}
