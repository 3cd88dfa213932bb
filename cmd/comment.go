package cmd

import (
	"context"
	"errors"
	"os"

	papernote "github.com/emrgen/papernote"
	"github.com/emrgen/papernote/internal/thread"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "comment commands",
}

func init() {
	commentCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	commentCmd.AddCommand(listCommentsCmd())
	commentCmd.AddCommand(addCommentCmd())
	commentCmd.AddCommand(replyCommentCmd())
	commentCmd.AddCommand(editCommentCmd())
	commentCmd.AddCommand(deleteCommentCmd())
}

// loadZone builds the comment zone of a summary and loads its forest.
func loadZone(summaryID int64, yes bool) (*thread.Zone, *papernote.Client, error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	confirm := thread.ConfirmFunc(promptConfirm(os.Stdin, os.Stdout))
	if yes {
		confirm = func(string) bool { return true }
	}

	zone := thread.NewZone(summaryID, client.Comments, sess,
		thread.WithConfirmer(confirm),
		thread.WithNotifier(thread.NotifyFunc(notifyRed)),
	)
	if err := zone.Load(context.Background()); err != nil {
		_ = zone.Render(os.Stdout)
		client.Close()
		return nil, nil, err
	}

	return zone, client, nil
}

func listCommentsCmd() *cobra.Command {
	var summaryID int64
	var collapsed []int64

	command := &cobra.Command{
		Use:   "list",
		Short: "show the comments of a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id"}) {
				return nil
			}

			zone, client, err := loadZone(summaryID, false)
			if err != nil {
				return err
			}
			defer client.Close()

			for _, id := range collapsed {
				zone.Expand.Collapse(id)
			}
			return zone.Render(os.Stdout)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().Int64SliceVar(&collapsed, "collapse", nil, "comment ids whose replies are hidden")

	return command
}

func addCommentCmd() *cobra.Command {
	var summaryID int64
	var content string

	command := &cobra.Command{
		Use:   "add",
		Short: "comment on a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id", "message"}) {
				return nil
			}

			zone, client, err := loadZone(summaryID, false)
			if err != nil {
				return err
			}
			defer client.Close()

			zone.Composer.SetInput(content)
			return submit(zone)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().StringVarP(&content, "message", "m", "", "comment text")

	return command
}

func replyCommentCmd() *cobra.Command {
	var summaryID int64
	var commentID int64
	var content string

	command := &cobra.Command{
		Use:   "reply",
		Short: "reply to a comment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id", "comment-id"}) {
				return nil
			}

			zone, client, err := loadZone(summaryID, false)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := zone.Reply(commentID); err != nil {
				color.Red("%v", err)
				return err
			}

			target, _ := zone.Composer.Target()
			color.Blue("%s", target.Banner())
			color.White("> %s", target.Preview())

			// the mention stays in front of the message
			zone.Composer.SetInput(zone.Composer.Input() + content)
			return submit(zone)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().Int64VarP(&commentID, "comment-id", "c", 0, "comment to reply to")
	command.Flags().StringVarP(&content, "message", "m", "", "reply text")

	return command
}

func editCommentCmd() *cobra.Command {
	var summaryID int64
	var commentID int64
	var content string

	command := &cobra.Command{
		Use:   "edit",
		Short: "edit one of your comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id", "comment-id", "message"}) {
				return nil
			}

			zone, client, err := loadZone(summaryID, false)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := zone.Edit(context.Background(), commentID, content); err != nil {
				reportError(err)
				return err
			}

			return zone.Render(os.Stdout)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().Int64VarP(&commentID, "comment-id", "c", 0, "comment id")
	command.Flags().StringVarP(&content, "message", "m", "", "new text")

	return command
}

func deleteCommentCmd() *cobra.Command {
	var summaryID int64
	var commentID int64
	var yes bool

	command := &cobra.Command{
		Use:   "delete",
		Short: "delete one of your comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"summary-id", "comment-id"}) {
				return nil
			}

			zone, client, err := loadZone(summaryID, yes)
			if err != nil {
				return err
			}
			defer client.Close()

			deleted, err := zone.Delete(context.Background(), commentID)
			if err != nil {
				if errors.Is(err, thread.ErrNotAuthor) || errors.Is(err, thread.ErrCommentNotFound) {
					color.Red("%v", err)
				}
				return err
			}
			if !deleted {
				color.Yellow("cancelled")
				return nil
			}

			return zone.Render(os.Stdout)
		},
	}

	command.Flags().Int64VarP(&summaryID, "summary-id", "s", 0, "summary id")
	command.Flags().Int64VarP(&commentID, "comment-id", "c", 0, "comment id")
	command.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return command
}

func submit(zone *thread.Zone) error {
	if err := zone.Submit(context.Background()); err != nil {
		return err
	}

	if zone.Composer.Input() != "" {
		// failed or blank: nothing was sent
		return nil
	}
	return zone.Render(os.Stdout)
}
