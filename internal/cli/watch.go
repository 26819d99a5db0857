package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder watcher",
	Long: `Run the reminder scheduler in the foreground.

The watcher polls for tasks whose reminder time falls inside the
notification window and delivers each reminder once. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Scheduler == nil {
			return fmt.Errorf("reminder scheduler not initialized (notifications may be disabled)")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Watching for reminders every %s. Ctrl-C to stop.\n", Cfg.PollInterval)
		Scheduler.Run(ctx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
