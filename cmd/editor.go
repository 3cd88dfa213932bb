package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emrgen/papernote/internal/document"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "annotation drafts built from summary markdown",
}

func init() {
	editorCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	editorCmd.AddCommand(importDraftCmd())
	editorCmd.AddCommand(showDraftCmd())
	editorCmd.AddCommand(exportDraftCmd())
	editorCmd.AddCommand(listDraftsCmd())
	editorCmd.AddCommand(deleteDraftCmd())
}

func importDraftCmd() *cobra.Command {
	var summaryID int64

	command := &cobra.Command{
		Use:   "import",
		Short: "load the markdown of a summary into a new draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			drafts, err := client.Drafts()
			if err != nil {
				return err
			}

			draft, err := drafts.Import(context.Background(), summaryID)
			if err != nil {
				reportError(err)
				return err
			}

			printField("Title", draft.Title)
			printField("Blocks", strconv.Itoa(len(draft.Value)))
			printField("Restored images", strconv.Itoa(draft.RestoredImages))
			return nil
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")

	return command
}

func showDraftCmd() *cobra.Command {
	var summaryID int64

	command := &cobra.Command{
		Use:   "show",
		Short: "print the blocks of a draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			drafts, err := client.Drafts()
			if err != nil {
				return err
			}

			draft, err := drafts.GetOrImport(context.Background(), summaryID)
			if err != nil {
				reportError(err)
				return err
			}

			color.Green("%s", draft.Title)
			printBlocks(draft.Value)
			return nil
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")

	return command
}

func exportDraftCmd() *cobra.Command {
	var summaryID int64
	var out string

	command := &cobra.Command{
		Use:   "export",
		Short: "write a draft back to markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			drafts, err := client.Drafts()
			if err != nil {
				return err
			}

			md, err := drafts.Export(context.Background(), summaryID)
			if err != nil {
				reportError(err)
				return err
			}

			if out == "" {
				fmt.Print(md)
				return nil
			}
			return os.WriteFile(out, []byte(md), 0o644)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")

	return command
}

func listDraftsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list saved drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			drafts, err := client.Drafts()
			if err != nil {
				return err
			}

			saved, err := drafts.List(context.Background())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Summary", "Title", "Codec", "Size", "Updated"})
			for _, d := range saved {
				table.Append([]string{
					strconv.FormatInt(d.SummaryID, 10),
					d.Title,
					d.Compression,
					strconv.Itoa(len(d.Content)),
					d.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			table.Render()
			return nil
		},
	}

	return command
}

func deleteDraftCmd() *cobra.Command {
	var summaryID int64

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete a saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			drafts, err := client.Drafts()
			if err != nil {
				return err
			}

			return drafts.Delete(context.Background(), summaryID)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")

	return command
}

func printBlocks(v document.Value) {
	for _, b := range v.Blocks() {
		switch b.Type {
		case document.TypeImage:
			color.Cyan("%4d  [image] %s", b.Meta.Order, b.Prop("src"))
		case document.TypeDivider:
			fmt.Printf("%4d  ---\n", b.Meta.Order)
		default:
			indent := strings.Repeat("  ", b.Meta.Depth)
			fmt.Printf("%4d  %-14s %s%s\n", b.Meta.Order, b.Type, indent, clip(b.Text(), 80))
		}
	}
}

func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
