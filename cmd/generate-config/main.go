package main

import (
	"homegame-server/internal/config"
	"os"

	"gopkg.in/yaml.v2"
)

// prints the default configuration, e.g., go run ./cmd/generate-config > config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
