package config

// Presets are named run-parameter bundles for common experiment shapes.
var presets = map[string]Config{
	// quick sanity check during network authoring
	"quick": {
		Discipline: "async",
		Steps:      10,
		Runs:       20,
	},
	// publication-grade ensemble with convergence stop
	"deep": {
		Discipline: "async",
		Steps:      50,
		Runs:       5000,
		Converge:   ConvergeConfig{Epsilon: 0.5, Window: 200},
	},
	// deterministic attractor search under the canonical synchronous mode
	"attractor": {
		Discipline: "lockstep",
		Steps:      100,
		Runs:       500,
	},
}

func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	return []string{"attractor", "deep", "quick"}
}
