package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/spf13/cobra"
)

var (
	brandKeyStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	brandLabelStyle = lipgloss.NewStyle().Width(14)
	brandThemeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#727072"))
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the brands briefs can be rendered for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, b := range core.Brands() {
			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinHorizontal(lipgloss.Top,
				brandKeyStyle.Render(b.Key),
				brandLabelStyle.Render(b.Label),
				brandThemeStyle.Render(strings.Join(b.Themes, ", ")),
			))
		}
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of --json output",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(brandsCmd)
	rootCmd.AddCommand(schemaCmd)
}
