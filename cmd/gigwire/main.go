// Command gigwire scrapes configured venue websites and reconciles their
// listings into the canonical event store.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mbrevik/gigwire/internal/cli"
)

func main() {
	// Credentials and DSNs come from the environment; a local .env file is
	// optional.
	_ = godotenv.Load()

	cli.Execute()
}
