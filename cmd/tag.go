package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "tag commands",
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "user commands",
}

func init() {
	tagCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	tagCmd.AddCommand(popularTagsCmd())

	userCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	userCmd.AddCommand(userInterestsCmd())
	userCmd.AddCommand(userMeCmd())
}

func popularTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "list popular tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			tags, err := client.Tags.Popular(context.Background())
			if err != nil {
				reportError(err)
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Tag", "Count"})
			for _, tag := range tags {
				count := ""
				if tag.Count > 0 {
					count = strconv.Itoa(tag.Count)
				}
				table.Append([]string{tag.Name, count})
			}
			table.Render()
			return nil
		},
	}
}

func userInterestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interests",
		Short: "list your interests",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			interests, err := client.Users.Interests(context.Background())
			if err != nil {
				reportError(err)
				return err
			}

			printField("Interests", strings.Join(interests, ", "))
			return nil
		},
	}
}

func userMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "show your profile from the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			user, err := client.Users.Me(context.Background())
			if err != nil {
				reportError(err)
				return err
			}

			printField("ID", strconv.FormatInt(user.ID, 10))
			printField("Username", user.Username)
			printField("Email", user.Email)
			printField("Profile image", user.ProfileImageURL)
			return nil
		},
	}
}
