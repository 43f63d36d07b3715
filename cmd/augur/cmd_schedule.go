package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/augur/internal/logger"
	"github.com/user/augur/internal/scheduler"
	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleAddCmd, scheduleListCmd, scheduleRemoveCmd,
		scheduleEnableCmd, scheduleDisableCmd, scheduleServeCmd)

	scheduleAddCmd.Flags().String("name", "", "schedule name (required)")
	scheduleAddCmd.Flags().String("cron", "", "cron expression (required)")
	scheduleAddCmd.Flags().StringArray("input", nil, "input field as key=value (repeatable)")
	scheduleAddCmd.Flags().String("json", "", "input as a JSON document")
	_ = scheduleAddCmd.MarkFlagRequired("name")
	_ = scheduleAddCmd.MarkFlagRequired("cron")
}

func scheduleStore() *scheduler.Store {
	cfg := loadConfig()
	return scheduler.NewStore(filepath.Join(cfg.DataDir, "schedules.json"))
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage recurring runs",
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <owner/name[:version]>",
	Short: "Add a recurring run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		cronExpr, _ := cmd.Flags().GetString("cron")
		pairs, _ := cmd.Flags().GetStringArray("input")
		jsonDoc, _ := cmd.Flags().GetString("json")

		input, err := parseInput(pairs, jsonDoc)
		if err != nil {
			return err
		}
		if _, err := augur.ParseIdentifier(args[0]); err != nil {
			return err
		}

		store := scheduleStore()
		entry := &scheduler.Entry{
			Name:     name,
			Ref:      args[0],
			Schedule: cronExpr,
			Input:    input,
			Enabled:  true,
		}
		if err := store.Add(entry); err != nil {
			return fmt.Errorf("add schedule: %w", err)
		}
		fmt.Printf("Schedule %q added.\n", name)
		return nil
	},
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := scheduleStore()
		entries, err := store.List()
		if err != nil {
			return fmt.Errorf("list schedules: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No schedules configured.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCRON\tENABLED\tMODEL")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", e.Name, e.Schedule, e.Enabled, e.Ref)
		}
		return w.Flush()
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := scheduleStore().Remove(args[0]); err != nil {
			return fmt.Errorf("remove schedule: %w", err)
		}
		fmt.Printf("Schedule %q removed.\n", args[0])
		return nil
	},
}

var scheduleEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := scheduleStore().SetEnabled(args[0], true); err != nil {
			return fmt.Errorf("enable schedule: %w", err)
		}
		fmt.Printf("Schedule %q enabled.\n", args[0])
		return nil
	},
}

var scheduleDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := scheduleStore().SetEnabled(args[0], false); err != nil {
			return fmt.Errorf("disable schedule: %w", err)
		}
		fmt.Printf("Schedule %q disabled.\n", args[0])
		return nil
	},
}

var scheduleServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the schedule ticker in the foreground",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)
		store := scheduler.NewStore(filepath.Join(cfg.DataDir, "schedules.json"))

		sched := scheduler.New(store, func(name, ref string, input map[string]any) {
			ctx := context.Background()
			output, err := client.Run(ctx, ref, input, nil)
			if err != nil {
				logger.Errorf("scheduled run %s failed: %v", name, err)
				return
			}
			if it, ok := output.(*augur.OutputIterator); ok {
				for {
					v, err := it.Next(ctx)
					if err == augur.ErrDone {
						return
					}
					if err != nil {
						logger.Errorf("scheduled run %s failed: %v", name, err)
						return
					}
					fmt.Println(v)
				}
			}
			_ = printJSON(output)
		})

		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
		logger.Info("scheduler started")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		return nil
	},
}
