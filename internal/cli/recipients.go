package cli

import (
	"github.com/spf13/cobra"
)

func newEnvelopeRecipientsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recipients ENVELOPE_ID",
		Short: "List the recipients of an envelope and their status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			recipients, err := client.GetEnvelopeRecipients(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, recipients)
		},
	}
}

// signerFlags are the flags of the commands adding or updating signers
type signerFlags struct {
	signers  []string
	firstID  int
	embedded bool
	resend   bool
}

func (f *signerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.signers, "signer", nil, "signer as 'Name <email>' (repeatable) [required]")
	cmd.Flags().IntVar(&f.firstID, "first-recipient-id", 1, "recipient id (and routing order) of the first signer, the next ones are numbered in order")
	cmd.Flags().BoolVar(&f.embedded, "embedded", false, "create embedded recipients (a client user id is generated for each)")
	cmd.Flags().BoolVar(&f.resend, "resend", false, "resend the envelope to the recipients")
	_ = cmd.MarkFlagRequired("signer")
}

func newEnvelopeAddRecipientsCmd(a *app) *cobra.Command {
	var flags signerFlags
	cmd := &cobra.Command{
		Use:   "add-recipients ENVELOPE_ID",
		Short: "Add signers to an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signers, err := parseSigners(flags.signers, flags.firstID, flags.embedded)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			recipients, err := client.AddEnvelopeRecipients(cmd.Context(), args[0], signers, flags.resend)
			if err != nil {
				return err
			}
			return writeJSON(cmd, recipients)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEnvelopeUpdateRecipientsCmd(a *app) *cobra.Command {
	var flags signerFlags
	cmd := &cobra.Command{
		Use:   "update-recipients ENVELOPE_ID",
		Short: "Update signers of an envelope, matched by recipient id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signers, err := parseSigners(flags.signers, flags.firstID, flags.embedded)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			summary, err := client.UpdateEnvelopeRecipients(cmd.Context(), args[0], signers, flags.resend)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEnvelopeDeleteRecipientsCmd(a *app) *cobra.Command {
	var recipientIDs []string
	cmd := &cobra.Command{
		Use:   "delete-recipients ENVELOPE_ID",
		Short: "Remove recipients from an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if len(recipientIDs) == 1 {
				recipients, err := client.DeleteEnvelopeRecipient(cmd.Context(), args[0], recipientIDs[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, recipients)
			}
			recipients, err := client.DeleteEnvelopeRecipients(cmd.Context(), args[0], recipientIDs)
			if err != nil {
				return err
			}
			return writeJSON(cmd, recipients)
		},
	}
	cmd.Flags().StringSliceVar(&recipientIDs, "recipient-id", nil, "id of the recipient to remove (repeatable) [required]")
	_ = cmd.MarkFlagRequired("recipient-id")
	return cmd
}
