package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().StringArray("input", nil, "input field as key=value (repeatable)")
	streamCmd.Flags().String("json", "", "input as a JSON document")
}

var streamCmd = &cobra.Command{
	Use:   "stream <owner/name[:version]>",
	Short: "Run a model and stream its output live",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		pairs, _ := cmd.Flags().GetStringArray("input")
		jsonDoc, _ := cmd.Flags().GetString("json")

		input, err := parseInput(pairs, jsonDoc)
		if err != nil {
			return err
		}

		events, errc, err := client.Stream(cmd.Context(), args[0], input, nil)
		if err != nil {
			return err
		}

		for ev := range events {
			switch ev.Type {
			case augur.EventOutput:
				fmt.Print(ev.Data)
			case augur.EventLogs:
				fmt.Fprintln(os.Stderr, ev.Data)
			case augur.EventDone:
				fmt.Println()
				return nil
			}
		}

		select {
		case err := <-errc:
			return err
		default:
			return nil
		}
	},
}
