package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelShowCmd, modelVersionsCmd)
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect models",
}

var modelShowCmd = &cobra.Command{
	Use:   "show <owner/name>",
	Short: "Show a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		model, err := client.Models.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(model)
	},
}

var modelVersionsCmd = &cobra.Command{
	Use:   "versions <owner/name>",
	Short: "List a model's versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		id, err := augur.ParseIdentifier(args[0])
		if err != nil {
			return err
		}

		versions, err := client.Models.Versions(cmd.Context(), id.Owner, id.Name)
		if err != nil {
			return err
		}

		if len(versions) == 0 {
			fmt.Println("No versions.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tCOG")
		for _, v := range versions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID, v.CreatedAt, v.CogVersion)
		}
		return w.Flush()
	},
}
