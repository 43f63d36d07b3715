package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/user/augur/internal/logger"
	"github.com/user/augur/internal/webhook"
	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().String("addr", "", "listen address (overrides config)")
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive prediction webhook deliveries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Listen.Addr
		}

		server := webhook.NewServer(cfg.Listen.Secret, func(deliveryID string, p *augur.Prediction) {
			entry := logger.WithFields(map[string]any{
				"delivery":   deliveryID,
				"prediction": p.ID,
				"status":     p.Status,
			})
			if progress := p.Progress(); progress != nil {
				entry = entry.WithField("progress", progress.Percentage)
			}
			entry.Info("prediction update")
		}, logger.Get())

		logger.Infof("listening on %s", addr)
		return http.ListenAndServe(addr, server)
	},
}
