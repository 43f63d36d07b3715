package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.AddCommand(trainCreateCmd, trainGetCmd, trainCancelCmd)

	trainCreateCmd.Flags().String("destination", "", "destination model as owner/name (required)")
	trainCreateCmd.Flags().StringArray("input", nil, "input field as key=value (repeatable)")
	trainCreateCmd.Flags().String("json", "", "input as a JSON document")
	trainCreateCmd.Flags().Bool("wait", false, "wait for a terminal state")
	_ = trainCreateCmd.MarkFlagRequired("destination")
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Manage trainings",
}

var trainCreateCmd = &cobra.Command{
	Use:   "create <owner/name:version>",
	Short: "Start a training from a base version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		destination, _ := cmd.Flags().GetString("destination")
		pairs, _ := cmd.Flags().GetStringArray("input")
		jsonDoc, _ := cmd.Flags().GetString("json")
		wait, _ := cmd.Flags().GetBool("wait")

		input, err := parseInput(pairs, jsonDoc)
		if err != nil {
			return err
		}

		t, err := client.Trainings.Create(cmd.Context(), args[0], destination, input, nil)
		if err != nil {
			return err
		}

		if wait {
			if err := client.WaitTraining(cmd.Context(), t); err != nil {
				return err
			}
			if t.Status == augur.StatusFailed {
				return &augur.ModelError{Message: t.Error}
			}
		}
		return printJSON(t)
	},
}

var trainGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a training by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		t, err := client.Trainings.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(t)
	},
}

var trainCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a running training",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		t, err := client.Trainings.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := client.Trainings.Cancel(cmd.Context(), t); err != nil {
			return err
		}
		fmt.Printf("Training %s cancel requested.\n", t.ID)
		return nil
	},
}
