package aescript

import "github.com/iburimskiy/particle-ring/internal/config"

// GlowVariant tags which glow module a fragment targets.
type GlowVariant int

const (
	GlowPrimary GlowVariant = iota
	GlowFallback
)

const (
	deepGlowMatch     = "Deep Glow"
	standardGlowMatch = "ADBE Glo2"
	standardGlowName  = "Standard Glow (Deep Glow Missing)"
)

type binding struct {
	Property string
	Field    config.Field
}

// glowModule is one variant of the glow fragment. The host picks the
// variant at its own runtime: the primary inside try, the fallback in catch.
type glowModule struct {
	Variant   GlowVariant
	Var       string
	MatchName string
	Rename    string
	Bindings  []binding
}

var glowModules = [...]glowModule{
	GlowPrimary: {
		Variant:   GlowPrimary,
		Var:       "dg",
		MatchName: deepGlowMatch,
		Bindings: []binding{
			{"Radius", config.FieldGlowRadius},
			{"Exposure", config.FieldGlowIntensity},
			{"Threshold", config.FieldGlowThreshold},
		},
	},
	GlowFallback: {
		Variant:   GlowFallback,
		Var:       "glow",
		MatchName: standardGlowMatch,
		Rename:    standardGlowName,
		Bindings: []binding{
			{"Glow Radius", config.FieldGlowRadius},
			{"Glow Intensity", config.FieldGlowIntensity},
			{"Glow Threshold", config.FieldGlowThreshold},
		},
	},
}

func (e *emitter) glowModule(m glowModule, indent int) {
	if m.Variant == GlowPrimary {
		// declared before the try so the catch can clean it up
		e.linef(indent, "%s = solid.Effects.addProperty(%s);", m.Var, quote(m.MatchName))
		// addProperty may return null instead of throwing when the plugin is absent
		e.linef(indent, "if (!%s) {", m.Var)
		e.linef(indent+1, "throw new Error(%s);", quote(m.MatchName+" unavailable"))
		e.linef(indent, "}")
	} else {
		e.linef(indent, "var %s = solid.Effects.addProperty(%s);", m.Var, quote(m.MatchName))
	}
	if m.Rename != "" {
		e.linef(indent, "%s.name = %s;", m.Var, quote(m.Rename))
	}
	for _, b := range m.Bindings {
		e.linef(indent, "%s.property(%s).expression =", m.Var, quote(b.Property))
		e.linef(indent+1, "%s;", quote(ref(mustLookup(b.Field))))
	}
}

func (e *emitter) glow() {
	primary, fallback := glowModules[GlowPrimary], glowModules[GlowFallback]

	e.section("5. Glow (" + primary.MatchName + " with " + fallback.MatchName + " fallback)")
	e.linef(1, "var %s = null;", primary.Var)
	e.linef(1, "try {")
	e.glowModule(primary, 2)
	e.linef(1, "} catch (err) {")
	e.linef(2, "if (%s) {", primary.Var)
	e.linef(3, "%s.remove();", primary.Var)
	e.linef(2, "}")
	e.glowModule(fallback, 2)
	e.linef(1, "}")
}
