package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/service"
	"github.com/emrgen/papernote/internal/session"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags checks if the required flags are set and returns ok if they are set
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		_ = cmd.Usage()

		return true
	}

	return false
}

// reportError prints err the way the front end shows it: the operation's
// message for remote failures, a sign-in hint when there is no token.
func reportError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNoAccessToken):
		color.Red("not signed in: run `paper login --code <code>`")
	case errors.Is(err, session.ErrSignUpRequired):
		color.Yellow("sign-up is not complete: username, profile image and interests are required")
	case errors.Is(err, service.ErrEmptyContent):
	default:
		color.Red("%s", api.MessageOf(err))
	}
}

func printSummaries(w io.Writer, summaries []model.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "no summaries")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Likes", "Comments", "Created"})
	for _, s := range summaries {
		created := ""
		if !s.CreatedAt.IsZero() {
			created = s.CreatedAt.Format("2006-01-02")
		}
		table.Append([]string{
			strconv.FormatInt(s.SummaryID, 10),
			s.Title,
			strconv.Itoa(s.Likes),
			strconv.Itoa(s.CommentCount),
			created,
		})
	}
	table.Render()
}

// promptConfirm asks a yes/no question on the terminal.
func promptConfirm(in io.Reader, out io.Writer) func(prompt string) bool {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

func notifyRed(message string) {
	color.New(color.FgRed).Fprintln(os.Stderr, message)
}
