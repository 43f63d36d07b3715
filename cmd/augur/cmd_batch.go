package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/augur/pkg/augur"
)

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("inputs", "", "JSONL file with one input object per line (required)")
	batchCmd.Flags().Int64("concurrency", 0, "max predictions in flight (defaults to config max_concurrent)")
	_ = batchCmd.MarkFlagRequired("inputs")
}

var batchCmd = &cobra.Command{
	Use:   "batch <owner/name[:version]>",
	Short: "Run a model over many inputs concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		inputsPath, _ := cmd.Flags().GetString("inputs")
		concurrency, _ := cmd.Flags().GetInt64("concurrency")
		if concurrency <= 0 {
			concurrency = int64(cfg.MaxConcurrent)
		}

		inputs, err := readInputsFile(inputsPath)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no inputs in %s", inputsPath)
		}

		results, err := client.RunBatch(cmd.Context(), args[0], inputs, concurrency, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "some runs failed: %v\n", err)
		}

		// Incremental outputs are drained so every line is a complete result.
		for i, result := range results {
			if it, ok := result.(*augur.OutputIterator); ok {
				var drained []any
				for {
					v, err := it.Next(cmd.Context())
					if err == augur.ErrDone {
						break
					}
					if err != nil {
						fmt.Fprintf(os.Stderr, "input %d failed: %v\n", i, err)
						break
					}
					drained = append(drained, v)
				}
				result = drained
			}
			line, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		return nil
	},
}

// readInputsFile parses a JSONL file into one input map per line. Blank
// lines are skipped.
func readInputsFile(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inputs file: %w", err)
	}
	defer f.Close()

	var inputs []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var input map[string]any
		if err := json.Unmarshal(line, &input); err != nil {
			return nil, fmt.Errorf("inputs file line %d: %w", lineNo, err)
		}
		inputs = append(inputs, input)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inputs file: %w", err)
	}
	return inputs, nil
}
