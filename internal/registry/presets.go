package registry

import "github.com/vovakirdan/snake-gym/internal/env"

func init() {
	Register(Preset{
		ID:     "snake-v0",
		Title:  "Snake 40x40",
		Config: env.DefaultConfig(),
	})

	small := env.DefaultConfig()
	small.GridSize = 10
	Register(Preset{
		ID:     "snake-small-v0",
		Title:  "Snake 10x10",
		Config: small,
	})
}
