package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show active alerts",
	Long: `Evaluate alert conditions against the current task list and display
any triggered alerts.

Alerts cover overdue tasks, days with many due tasks, and a completion
streak at risk of breaking.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if AlertEngine == nil {
			return fmt.Errorf("alert engine not initialized")
		}
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		alerts := AlertEngine.Evaluate(Store.All(), time.Now())
		if len(alerts) == 0 {
			fmt.Println("No active alerts.")
			return nil
		}

		fmt.Printf("%d active alert(s):\n\n", len(alerts))
		for _, alert := range alerts {
			severity := strings.ToUpper(string(alert.Severity))
			fmt.Printf("  [%s] %s\n", severity, alert.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
