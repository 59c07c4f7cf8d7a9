package main

import (
	"fmt"
	"os"

	"ctrlsheet/internal/compare"
	"ctrlsheet/internal/config"
	"ctrlsheet/internal/extract"
	"ctrlsheet/internal/logger"
	"ctrlsheet/internal/review"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	cfg, err := config.LoadConfig("configs/config.toml")
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "extract":
		runExtract(cfg)
	case "compare":
		runCompare(cfg)
	case "review":
		if len(os.Args) < 3 {
			fmt.Println("Error: review command requires a conclusion file path")
			fmt.Println("Usage: ctrlsheet review <conclusion_file>")
			return
		}
		runReview(cfg, os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("CtrlSheet - Control Testing Workbook Tool")
	fmt.Println("\nUsage:")
	fmt.Println("  ctrlsheet extract                     - Extract control records from all workbooks")
	fmt.Println("  ctrlsheet compare                     - Compare design vs operation results")
	fmt.Println("  ctrlsheet review <conclusion_file>    - Browse a conclusion file interactively")
}

func runExtract(cfg *config.Config) {
	if _, err := extract.Run(cfg); err != nil {
		logger.Error("Extract operation failed", "error", err)
		fmt.Printf("Error extracting workbooks: %v\n", err)
		os.Exit(1)
	}
}

func runCompare(cfg *config.Config) {
	if _, err := compare.Run(cfg); err != nil {
		logger.Error("Compare operation failed", "error", err)
		fmt.Printf("Error comparing workbooks: %v\n", err)
		os.Exit(1)
	}
}

func runReview(cfg *config.Config, conclusionFile string) {
	logger.Info("Starting review operation", "file", conclusionFile)

	uiConfig := review.UIConfig{
		RowsPerPage: cfg.UI.RowsPerPage,
	}
	if err := review.RunReviewTUI(conclusionFile, uiConfig); err != nil {
		logger.Error("Review operation failed", "error", err)
		fmt.Printf("Error running review tool: %v\n", err)
		os.Exit(1)
	}
}
