package main

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

// newStatusCmd - разовый снимок /api/status в stdout, без HTTP сервера
func newStatusCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the current status document as JSON and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.service.GetStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to read status: %w", err)
			}

			json := jsoniter.ConfigCompatibleWithStandardLibrary
			var out []byte
			if pretty {
				out, err = json.MarshalIndent(doc, "", "  ")
			} else {
				out, err = json.Marshal(doc)
			}
			if err != nil {
				return fmt.Errorf("failed to encode status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
