package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/groupstats/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteAliasListing outputs the alias store content as a table, JSON or YAML.
func WriteAliasListing(listing schema.AliasListing, mode schema.OutputMode, outputFile string) error {
	if listing.Aliases == nil {
		listing.Aliases = []schema.AliasRecord{}
	}
	switch mode {
	case schema.JSONOut:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSON(w, listing)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeYAML(w, listing)
		}, "Wrote YAML")
	default:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeAliasTable(w, listing)
		}, "Wrote table")
	}
}

// writeAliasTable prints the stored path followed by one row per canonical identity.
func writeAliasTable(w io.Writer, listing schema.AliasListing) error {
	path := listing.Path
	if path == "" {
		path = "(not set)"
	}
	if _, err := fmt.Fprintf(w, "Repository path: %s\n", path); err != nil {
		return err
	}
	if len(listing.Aliases) == 0 {
		_, err := fmt.Fprintln(w, "No aliases defined")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Canonical", "Members"})
	var data [][]string
	for _, a := range listing.Aliases {
		data = append(data, []string{a.Canonical, strings.Join(a.Members, ", ")})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
