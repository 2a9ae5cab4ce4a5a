package cli

import (
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Show the login information of the configured user",
		Long: `Call /login_information and show the accounts of the user.

The default account is used by the other commands when no account id is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.LoginInformation(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, info)
		},
	}
}

func newAccountCmd(a *app) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage DocuSign accounts",
	}
	accountCmd.AddCommand(
		newAccountInfoCmd(a),
		newAccountProvisioningCmd(a),
		newAccountCreateCmd(a),
		newAccountDeleteCmd(a),
	)
	return accountCmd
}

func newAccountInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [ACCOUNT_ID]",
		Short: "Show the information of an account (the client account by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := ""
			if len(args) == 1 {
				accountID = args[0]
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.GetAccountInformation(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			return writeJSON(cmd, info)
		},
	}
}

func newAccountProvisioningCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "provisioning",
		Short: "Show the provisioning information of the integrator key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			provisioning, err := client.GetAccountProvisioning(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, provisioning)
		},
	}
}

func newAccountCreateCmd(a *app) *cobra.Command {
	var account docusign.NewAccount
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with its initial user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			summary, err := client.CreateAccount(cmd.Context(), account)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}
	cmd.Flags().StringVar(&account.AccountName, "name", "", "account name [required]")
	cmd.Flags().StringVar(&account.InitialUser.Email, "email", "", "email of the initial user [required]")
	cmd.Flags().StringVar(&account.InitialUser.UserName, "user-name", "", "name of the initial user [required]")
	cmd.Flags().StringVar(&account.InitialUser.FirstName, "first-name", "", "first name of the initial user")
	cmd.Flags().StringVar(&account.InitialUser.LastName, "last-name", "", "last name of the initial user")
	cmd.Flags().StringVar(&account.InitialUser.Password, "user-password", "", "password of the initial user")
	cmd.Flags().StringVar(&account.PlanInformation.PlanID, "plan-id", "", "plan id [required]")
	cmd.Flags().StringVar(&account.DistributorCode, "distributor-code", "", "distributor code")
	cmd.Flags().StringVar(&account.DistributorPassword, "distributor-password", "", "distributor password")
	for _, name := range []string{"name", "email", "user-name", "plan-id"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newAccountDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ACCOUNT_ID",
		Short: "Close an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			deleted, err := client.DeleteAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]any{"accountId": args[0], "deleted": deleted})
		},
	}
}
