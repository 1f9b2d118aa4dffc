package main

import (
	"fmt"
	"os"

	"github.com/clearledger/recon-backend/internal/cli"
	"github.com/clearledger/recon-backend/internal/infrastructure/config"
)

func main() {
	cfg := config.LoadOrEnv()
	flags := cli.ParseReportFlags()

	if err := cli.RunReport(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
