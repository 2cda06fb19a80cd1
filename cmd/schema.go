package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/briefpipe/core/render"
	"github.com/spf13/cobra"
)

func runSchema(cmd *cobra.Command, _ []string) error {
	data, err := render.JSONSchema()
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
