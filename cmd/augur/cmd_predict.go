package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.AddCommand(predictCreateCmd, predictGetCmd, predictCancelCmd, predictListCmd)

	predictCreateCmd.Flags().String("version", "", "model version ID (required)")
	predictCreateCmd.Flags().StringArray("input", nil, "input field as key=value (repeatable)")
	predictCreateCmd.Flags().String("json", "", "input as a JSON document")
	predictCreateCmd.Flags().String("webhook", "", "URL to receive prediction updates")
	predictCreateCmd.Flags().Bool("stream", false, "enable output streaming")
	predictCreateCmd.Flags().Bool("wait", false, "wait for a terminal state")
	_ = predictCreateCmd.MarkFlagRequired("version")

	predictGetCmd.Flags().Bool("wait", false, "wait for a terminal state")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Manage predictions",
}

var predictCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new prediction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		versionID, _ := cmd.Flags().GetString("version")
		pairs, _ := cmd.Flags().GetStringArray("input")
		jsonDoc, _ := cmd.Flags().GetString("json")
		webhook, _ := cmd.Flags().GetString("webhook")
		stream, _ := cmd.Flags().GetBool("stream")
		wait, _ := cmd.Flags().GetBool("wait")

		input, err := parseInput(pairs, jsonDoc)
		if err != nil {
			return err
		}

		p, err := client.Predictions.Create(cmd.Context(), versionID, input, &augur.PredictionOptions{
			Webhook: webhook,
			Stream:  stream,
		})
		if err != nil {
			return err
		}

		if wait {
			if err := client.Wait(cmd.Context(), p); err != nil {
				return err
			}
		}
		return printJSON(p)
	},
}

var predictGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a prediction by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		p, err := client.Predictions.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if wait, _ := cmd.Flags().GetBool("wait"); wait {
			if err := client.Wait(cmd.Context(), p); err != nil {
				return err
			}
		}

		if progress := p.Progress(); progress != nil {
			fmt.Fprintf(os.Stderr, "progress: %.0f%% (%d/%d)\n",
				progress.Percentage*100, progress.Current, progress.Total)
		}
		return printJSON(p)
	},
}

var predictCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a running prediction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		p, err := client.Predictions.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := client.Predictions.Cancel(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Printf("Prediction %s cancel requested.\n", p.ID)
		return nil
	},
}

var predictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your predictions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		predictions, err := client.Predictions.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(predictions) == 0 {
			fmt.Println("No predictions.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tCREATED")
		for _, p := range predictions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Status, p.CreatedAt)
		}
		return w.Flush()
	},
}
