package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/lexshelf/lexshelf/internal/catalog"
	"github.com/lexshelf/lexshelf/internal/config"
)

// ValidateCatalogCommand checks a catalog dataset before deployment:
// the same load + index path the server runs at startup, where a
// duplicate id or malformed record is fatal.
type ValidateCatalogCommand struct {
	Path    string
	Verbose bool
}

func NewValidateCatalogCommand() *ValidateCatalogCommand {
	return &ValidateCatalogCommand{}
}

func (cmd *ValidateCatalogCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("validate-catalog", flag.ExitOnError)

	fs.StringVar(&cmd.Path, "catalog", config.DefaultCatalogPath, "Path to the catalog JSON file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every book while validating")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s validate-catalog [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate a catalog dataset and print its area statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s validate-catalog -catalog ./catalog.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s validate-catalog -catalog ./catalog.json -verbose\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ValidateCatalogCommand) Run() error {
	books, err := catalog.LoadFile(cmd.Path)
	if err != nil {
		return err
	}

	index, err := catalog.NewIndex(books)
	if err != nil {
		return err
	}

	if cmd.Verbose {
		for _, book := range index.Books() {
			fmt.Printf("  %-8s %-40s %s\n", book.ID, book.Title, book.Area)
		}
	}

	fmt.Printf("Catalog OK: %d books\n", index.Len())
	for _, area := range index.Areas() {
		fmt.Printf("  %-30s %d\n", area.Area, area.Count)
	}

	return nil
}
