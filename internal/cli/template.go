package cli

import (
	"github.com/spf13/cobra"
)

func newTemplateCmd(a *app) *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect server-side templates",
	}
	templateCmd.AddCommand(
		&cobra.Command{
			Use:   "get TEMPLATE_ID",
			Short: "Show a template definition",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				template, err := client.GetTemplate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, template)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the templates of the account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				templates, err := client.ListTemplates(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, templates)
			},
		},
	)
	return templateCmd
}
