package config

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Frame pacing
	TargetTPS       = 60
	FrameWindowSize = 32
	MaxFrameRatio   = 4.0

	// Camera, elevated and aimed at the origin
	CameraHeight = 6.0
	CameraFOV    = 50.0
	CameraNear   = 0.1

	// Soft sprite
	SpriteSize = 32

	// Post-process
	BloomDownscale   = 4
	VignetteOffset   = 0.1
	VignetteDarkness = 0.5

	// Capture
	RecordEvery    = 2 // 30 fps out of 60
	RecordQueueLen = 8

	// Export
	ScriptFilename   = "Particle_Ring_v1.jsx"
	SnapshotFilename = "particle_snapshot.png"
	SequencePrefix   = "particle_sequence"
	PresetDBPath     = "data/presets.db"

	// MaxCount bounds buffer allocation for out-of-range counts. Only the
	// particle generator applies it; exports keep the requested count.
	MaxCount = 200000

	// Floors for parameters that must stay strictly positive.
	MinRadius     = 0.01
	MinSize       = 0.001
	MinCameraZoom = 1.0

	// MaxParam caps float parameters so scaled export values stay finite.
	MaxParam = 1e9
)
