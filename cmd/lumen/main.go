// ABOUTME: Operator console entry point for the Lumen Digest curation core
// ABOUTME: Headless CLI exercising browsing, review, reclassify and cluster workflows

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jbpiacentino/lumen-digest/pkg/config"
)

// printNotifier renders core notifications on stderr. The real console
// UI is an external collaborator; this keeps the CLI honest about what
// an operator would see.
type printNotifier struct{}

func (printNotifier) Banner(msg string) {
	fmt.Fprintf(os.Stderr, "[banner] %s\n", msg)
}

func (printNotifier) Toast(msg string) {
	fmt.Fprintf(os.Stderr, "[notice] %s\n", msg)
}

func main() {
	// .env is optional; real deployments configure via the environment
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cliApp := &cli.App{
		Name:  "lumen",
		Usage: "operator console for the Lumen Digest classified news feed",
		Commands: []*cli.Command{
			articlesCommand(cfg),
			countsCommand(cfg),
			reviewCommand(cfg),
			reclassifyCommand(cfg),
			deleteCommand(cfg),
			clustersCommand(cfg),
			taxonomyCommand(cfg),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
