package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

func newDemoCmd(a *app) *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through the embedded signing workflows against a DocuSign account",
		Long: `Walk through the embedded signing workflows against a DocuSign account (use the demo environment).

Each step is logged, the result (envelope, embedded recipients and their signing URLs) is written as JSON.`,
	}
	demoCmd.AddCommand(newDemoEmbeddedSigningCmd(a), newDemoTemplateSigningCmd(a))
	return demoCmd
}

// demoResult is the output of the demo commands
type demoResult struct {
	createdEnvelope
	Recipients *docusign.EnvelopeRecipients `json:"recipients"`
}

// signingURLs synchronizes the recipients of the envelope and requests the signing URL
// of every embedded signer.
func signingURLs(ctx context.Context, client *docusign.Client, envelope *docusign.Envelope, out *createdEnvelope, returnURL string) (*docusign.EnvelopeRecipients, error) {
	recipients, err := client.GetEnvelopeRecipients(ctx, envelope.EnvelopeID)
	if err != nil {
		return nil, err
	}
	envelope.ApplyRecipients(recipients)
	slog.Info("recipients synchronized", slog.Int("signers", len(recipients.Signers)))

	for i := range out.Embedded {
		signer, ok := envelope.SignerByClientUserID(out.Embedded[i].ClientUserID)
		if !ok {
			return nil, fmt.Errorf("embedded signer %s not found in the envelope", out.Embedded[i].Email)
		}
		url, err := client.RecipientViewURL(ctx, envelope, *signer, returnURL)
		if err != nil {
			return nil, err
		}
		out.Embedded[i].RecipientID = signer.RecipientID
		out.Embedded[i].URL = url
		slog.Info("signing URL created", slog.String("recipient_id", signer.RecipientID), slog.String("email", signer.Email))
	}
	return recipients, nil
}

func newDemoEmbeddedSigningCmd(a *app) *cobra.Command {
	var (
		documents []string
		signers   []string
		returnURL string
		callback  string
	)
	cmd := &cobra.Command{
		Use:   "embedded-signing",
		Short: "Send documents to embedded signers and print their signing URLs",
		Example: `  docusign demo embedded-signing --document contract.pdf --document annex.pdf \
    --signer "Jean Français <jean.francais@example.com>" --signer "Paul English <paul.english@example.com>" \
    --return-url https://example.com/signed --callback-url https://example.com/connect`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client()
			if err != nil {
				return err
			}

			login, err := client.LoginInformation(ctx)
			if err != nil {
				return err
			}
			slog.Info("logged in", slog.Int("accounts", len(login.LoginAccounts)), slog.String("account_id", client.AccountID()))

			opts := envelopeOptions{subject: "Embedded signing demo", blurb: "Please sign the documents", callbackURL: callback, embedded: true}
			envelope := opts.envelope()
			envelope.Recipients, err = parseSigners(signers, 1, true)
			if err != nil {
				return err
			}
			// the first signer gets a sign here tab, the others place their tabs in the DocuSign UI
			envelope.Recipients[0].Tabs = []docusign.Tab{docusign.NewSignHereTab("1", 1, 100, 100)}

			var closeDocuments func()
			envelope.Documents, closeDocuments, err = openDocuments(documents)
			if err != nil {
				return err
			}
			defer closeDocuments()

			summary, err := client.CreateEnvelopeFromDocuments(ctx, envelope)
			if err != nil {
				return err
			}
			slog.Info("envelope created", slog.String("envelope_id", summary.EnvelopeID), slog.String("status", summary.Status))

			out, err := newCreatedEnvelope(summary, envelope)
			if err != nil {
				return err
			}
			if out.Documents, err = documentChecksums(documents); err != nil {
				return err
			}
			recipients, err := signingURLs(ctx, client, envelope, out, returnURL)
			if err != nil {
				return err
			}
			return writeJSON(cmd, demoResult{createdEnvelope: *out, Recipients: recipients})
		},
	}
	cmd.Flags().StringArrayVar(&documents, "document", nil, "document file (repeatable) [required]")
	cmd.Flags().StringArrayVar(&signers, "signer", nil, "signer as 'Name <email>' (repeatable, in routing order) [required]")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL signers are redirected to once done [required]")
	cmd.Flags().StringVar(&callback, "callback-url", "", "URL receiving the Connect notifications of the envelope")
	for _, name := range []string{"document", "signer", "return-url"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDemoTemplateSigningCmd(a *app) *cobra.Command {
	var (
		templateID string
		roles      []string
		returnURL  string
		callback   string
	)
	cmd := &cobra.Command{
		Use:   "template-signing",
		Short: "Create an envelope from a template with embedded signers and print their signing URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client()
			if err != nil {
				return err
			}

			template, err := client.GetTemplate(ctx, templateID)
			if err != nil {
				return err
			}
			slog.Info("template found",
				slog.String("template_id", templateID),
				slog.String("name", template.EnvelopeTemplateDefinition.Name),
				slog.Int("roles", len(template.Recipients.Signers)))

			opts := envelopeOptions{subject: template.EmailSubject, blurb: template.EmailBlurb, callbackURL: callback, embedded: true}
			envelope := opts.envelope()
			envelope.TemplateID = templateID
			envelope.TemplateRoles, err = parseRoles(roles, true)
			if err != nil {
				return err
			}

			summary, err := client.CreateEnvelopeFromTemplate(ctx, envelope)
			if err != nil {
				return err
			}
			slog.Info("envelope created", slog.String("envelope_id", summary.EnvelopeID), slog.String("status", summary.Status))

			out, err := newCreatedEnvelope(summary, envelope)
			if err != nil {
				return err
			}
			recipients, err := signingURLs(ctx, client, envelope, out, returnURL)
			if err != nil {
				return err
			}
			return writeJSON(cmd, demoResult{createdEnvelope: *out, Recipients: recipients})
		},
	}
	cmd.Flags().StringVar(&templateID, "template-id", "", "template id [required]")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "template role as 'RoleName=Name <email>' (repeatable) [required]")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL signers are redirected to once done [required]")
	cmd.Flags().StringVar(&callback, "callback-url", "", "URL receiving the Connect notifications of the envelope")
	for _, name := range []string{"template-id", "role", "return-url"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
