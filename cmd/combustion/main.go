// Command combustion trains the combustibility classifier on a labeled CSV
// and classifies single-sample CSV files.
//
//	combustion train  --data train.csv [--roc-plot roc.png] [--json]
//	combustion predict --data train.csv --sample sample.csv [--json]
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ezoic/combustion/pkg/log"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		log.LogError(err, "combustion failed")
		os.Exit(exitCode(err))
	}
}
