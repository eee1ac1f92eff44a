package cmd

import (
	"fmt"
	"io"

	"restaurante/bot"
	"restaurante/db"
	"restaurante/models"
	"restaurante/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	stockThreshold int
	stockNotify    bool
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "List ingredients running low",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		threshold := cfg.Stock.LowThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = stockThreshold
		}
		low, err := services.ListLowStock(ctx, threshold)
		if err != nil {
			return err
		}
		printLowStock(cmd.OutOrStdout(), threshold, low)

		if stockNotify {
			notifier, err := bot.New(cfg.Telegram)
			if err != nil {
				return err
			}
			if notifier == nil {
				return fmt.Errorf("--notify needs TELEGRAM_TOKEN and TELEGRAM_CHAT_ID")
			}
			return notifier.LowStock(low)
		}
		return nil
	},
}

func printLowStock(w io.Writer, threshold int, low []models.Ingrediente) {
	if len(low) == 0 {
		fmt.Fprintf(w, "%s no ingredient at or below %d\n", color.GreenString("✓"), threshold)
		return
	}
	warnColor.Fprintf(w, "%d ingredient(s) at or below %d:\n", len(low), threshold)
	for _, i := range low {
		fmt.Fprintf(w, "  %s  %s  %d %s\n", keyColor.Sprintf("#%d", i.ID), i.Nombre, i.Cantidad, i.UnidadMedida)
	}
}

func init() {
	stockCmd.Flags().IntVar(&stockThreshold, "threshold", 0, "Stock level to report at or below (default LOW_STOCK_THRESHOLD)")
	stockCmd.Flags().BoolVar(&stockNotify, "notify", false, "Also send the report to the Telegram chat")
}
