package cmd

import (
	"os"

	papernote "github.com/emrgen/papernote"
	"github.com/emrgen/papernote/internal/config"
	"github.com/emrgen/papernote/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	sessions *session.Store
	sess     *session.Session
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paper",
	Short: "paper summaries, comments and annotations from the terminal",
	Example: `paper login --code <github-code>
paper home
paper summary search -k transformer -p 0
paper comment list -s <summary-id>
paper comment reply -s <summary-id> -c <comment-id> -m "thanks"
paper editor import -s <summary-id>
paper serve`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		config.SetupLogging(cfg)

		sessions = session.NewStore(cfg.Dir)
		loaded, err := sessions.Load()
		if err != nil {
			logrus.Warnf("error reading session: %v", err)
			loaded = session.Anonymous()
		}
		sess = loaded

		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(homeCmd())
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(editorCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(serveCmd())
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// newClient builds the services for the stored session. This is the only
// place the session is handed to the data layer.
func newClient() (*papernote.Client, error) {
	return papernote.NewClient(cfg, sess)
}
