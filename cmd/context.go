package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var code string

	command := &cobra.Command{
		Use:     "login",
		Short:   "sign in with a github oauth code",
		Example: "paper login --code <code>",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkMissingFlags(cmd, []string{"code"}) {
				return nil
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			signedIn, err := client.Auth.GithubCallback(context.Background(), code)
			if err != nil {
				reportError(err)
				return err
			}

			if err := sessions.Save(signedIn); err != nil {
				return fmt.Errorf("error saving session: %w", err)
			}
			sess = signedIn

			color.Green("signed in as %s", signedIn.User.Username)
			if !signedIn.User.Complete() {
				color.Yellow("sign-up is not complete yet")
			}
			return nil
		},
	}

	command.Flags().StringVarP(&code, "code", "c", "", "github oauth code")

	return command
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "show the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			if !sess.Authenticated() {
				color.Yellow("not signed in")
				return
			}

			printField("ID", strconv.FormatInt(sess.User.ID, 10))
			printField("Username", sess.User.Username)
			printField("Profile image", sess.User.ProfileImageURL)
			printField("Interests", strings.Join(sess.User.Interests, ", "))
			printField("Sign-up complete", strconv.FormatBool(sess.User.Complete()))
		},
	}
}
