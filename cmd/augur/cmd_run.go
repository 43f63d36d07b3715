package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArray("input", nil, "input field as key=value (repeatable)")
	runCmd.Flags().String("json", "", "input as a JSON document")
	runCmd.Flags().String("webhook", "", "URL to receive prediction updates")
}

var runCmd = &cobra.Command{
	Use:   "run <owner/name[:version]>",
	Short: "Run a model and print its output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		pairs, _ := cmd.Flags().GetStringArray("input")
		jsonDoc, _ := cmd.Flags().GetString("json")
		webhook, _ := cmd.Flags().GetString("webhook")

		input, err := parseInput(pairs, jsonDoc)
		if err != nil {
			return err
		}

		var opts *augur.PredictionOptions
		if webhook != "" {
			opts = &augur.PredictionOptions{Webhook: webhook}
		}

		output, err := client.Run(cmd.Context(), args[0], input, opts)
		if err != nil {
			return err
		}

		// Incremental outputs print as they arrive; atomic outputs print
		// once.
		if it, ok := output.(*augur.OutputIterator); ok {
			for {
				v, err := it.Next(cmd.Context())
				if err == augur.ErrDone {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Println(v)
			}
		}
		return printJSON(output)
	},
}
