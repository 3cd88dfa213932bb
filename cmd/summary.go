package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "summary commands",
}

func init() {
	summaryCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	summaryCmd.AddCommand(getSummaryCmd())
	summaryCmd.AddCommand(searchSummaryCmd())
	summaryCmd.AddCommand(tagSummaryCmd())
	summaryCmd.AddCommand(recommendSummaryCmd())
	summaryCmd.AddCommand(mySummaryCmd())
}

// homeCmd is the popular feed, open only to users who finished sign-up.
func homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "popular summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sess.RequireProfile(); err != nil {
				reportError(err)
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Summaries.Popular(context.Background())
			if err != nil {
				reportError(err)
				return err
			}

			printSummaries(os.Stdout, summaries)
			return nil
		},
	}
}

func getSummaryCmd() *cobra.Command {
	var summaryID int64

	command := &cobra.Command{
		Use:   "get",
		Short: "show a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			detail, err := client.Summaries.Get(context.Background(), summaryID)
			if err != nil {
				reportError(err)
				return err
			}

			printField("Title", detail.Title)
			printField("Brief", detail.Brief)
			printField("Tags", strings.Join(detail.Tags, ", "))
			printField("Likes", strconv.Itoa(detail.LikeCount))
			printField("Views", strconv.Itoa(detail.ViewCount))
			if !detail.PublishedAt.IsZero() {
				printField("Published", detail.PublishedAt.Format("2006-01-02"))
			}
			printField("Markdown", detail.MarkdownURL)
			return nil
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")

	return command
}

func searchSummaryCmd() *cobra.Command {
	var keyword string
	var page int

	command := &cobra.Command{
		Use:   "search",
		Short: "search summaries by keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"keyword"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Summaries.Search(context.Background(), keyword, page)
			if err != nil {
				reportError(err)
				return err
			}

			printSummaries(os.Stdout, summaries)
			return nil
		},
	}

	command.Flags().StringVarP(&keyword, "keyword", "k", "", "search keyword")
	command.Flags().IntVarP(&page, "page", "p", 0, "page number")

	return command
}

func tagSummaryCmd() *cobra.Command {
	var tag string
	var page int

	command := &cobra.Command{
		Use:   "tag",
		Short: "list summaries with a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"tag"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Summaries.ByTag(context.Background(), tag, page)
			if err != nil {
				reportError(err)
				return err
			}

			printSummaries(os.Stdout, summaries)
			return nil
		},
	}

	command.Flags().StringVarP(&tag, "tag", "t", "", "tag name")
	command.Flags().IntVarP(&page, "page", "p", 0, "page number")

	return command
}

func recommendSummaryCmd() *cobra.Command {
	var summaryID int64

	command := &cobra.Command{
		Use:   "recommend",
		Short: "list summaries similar to a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Summaries.Recommended(context.Background(), summaryID)
			if err != nil {
				reportError(err)
				return err
			}

			printSummaries(os.Stdout, summaries)
			return nil
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")

	return command
}

func mySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "list your summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err := client.Users.MySummaries(context.Background())
			if err != nil {
				reportError(err)
				return err
			}

			printSummaries(os.Stdout, summaries)
			return nil
		},
	}
}
