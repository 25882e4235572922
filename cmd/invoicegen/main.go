// Command invoicegen works on invoice documents stored as JSON files:
// totals, HTML rendering, PDF export and a live preview loop.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/diewo77/invoice-builder/internal/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logger.L.Errorw("invoicegen failed", "error", err)
		os.Exit(1)
	}
}
