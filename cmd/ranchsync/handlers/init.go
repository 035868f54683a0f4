package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/ranchsync/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive form.
	runWizard = config.RunWizard

	// saveDocument writes the document to a file.
	saveDocument = config.Save
)

// Init runs the wizard and writes the resulting document to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if outputPath == "" {
		outputPath = config.DefaultDocumentFilename
	}
	if fileExists(outputPath) {
		fmt.Fprintf(stderr, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	doc, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := saveDocument(doc, outputPath); err != nil {
		return fmt.Errorf("failed to write desired state: %w", err)
	}

	printInitSuccess(outputPath, doc)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, titleStyle.Render("ranchsync - desired state for Rancher"))
	fmt.Fprintln(stderr, labelStyle.Render(strings.Repeat("=", 37)))
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "This wizard writes one document: a cluster, node driver,")
	fmt.Fprintln(stderr, "node pool or node template.")
	fmt.Fprintln(stderr)
}

func printInitSuccess(outputPath string, doc *config.Document) {
	state := doc.State
	if state == "" {
		state = "present"
	}

	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, okStyle.Render("Desired state saved!"))
	fmt.Fprintln(stderr)
	fmt.Fprintf(stderr, "  File:  %s\n", outputPath)
	fmt.Fprintf(stderr, "  Kind:  %s\n", doc.Kind)
	fmt.Fprintf(stderr, "  Name:  %s\n", doc.Name)
	fmt.Fprintf(stderr, "  State: %s\n", state)
	fmt.Fprintln(stderr)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  ranchsync apply -f %s\n", outputPath)
	fmt.Fprintln(stderr)
}
