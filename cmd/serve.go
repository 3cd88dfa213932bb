package cmd

import (
	"context"

	"github.com/emrgen/papernote/internal/cache"
	"github.com/emrgen/papernote/internal/jobs"
	"github.com/emrgen/papernote/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve paper previews over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = cfg.ServerPort
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

			refresh := jobs.NewCacheRefreshTask(cfg.Refresh, client.Cache,
				jobs.Warmer{Entity: cache.EntityPopularSummaries, Load: func(ctx context.Context) error {
					_, err := client.Summaries.Popular(ctx)
					return err
				}},
				jobs.Warmer{Entity: cache.EntityPopularTags, Load: func(ctx context.Context) error {
					_, err := client.Tags.Popular(ctx)
					return err
				}},
			)

			executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{refresh})
			if err := executor.Run(); err != nil {
				return err
			}
			defer executor.Stop()

			logrus.Infof("paper preview server on :%s", port)
			handler := server.NewHandler(client.Summaries, client.Comments, drafts)
			return server.NewServer(port, handler).Start(cmd.Context())
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "listen port (default from config)")

	return command
}
