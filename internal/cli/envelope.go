package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/information-sharing-networks/docusign-client/internal/crypto"
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

// envelopeOptions are the flags shared by the commands creating envelopes
type envelopeOptions struct {
	subject     string
	blurb       string
	callbackURL string
	draft       bool
	embedded    bool
	sobo        string
}

func (o *envelopeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.subject, "subject", "", "email subject")
	cmd.Flags().StringVar(&o.blurb, "blurb", "", "email message")
	cmd.Flags().StringVar(&o.callbackURL, "callback-url", "", "URL receiving the Connect notifications of the envelope")
	cmd.Flags().BoolVar(&o.draft, "draft", false, "save the envelope without sending it")
	cmd.Flags().BoolVar(&o.embedded, "embedded", false, "create embedded recipients (a client user id is generated for each)")
	cmd.Flags().StringVar(&o.sobo, "send-on-behalf-of", "", "email of the user sending the envelope")
}

func (o *envelopeOptions) envelope() *docusign.Envelope {
	envelope := &docusign.Envelope{
		EmailSubject: o.subject,
		EmailBlurb:   o.blurb,
		SOBOEmail:    o.sobo,
	}
	if o.draft {
		envelope.Status = docusign.EnvelopeStatusCreated
	}
	if o.callbackURL != "" {
		envelope.EventNotification = docusign.NewEventNotification(o.callbackURL)
	}
	return envelope
}

// createdEnvelope is the output of the commands creating envelopes
type createdEnvelope struct {
	*docusign.EnvelopeSummary
	Checksum  string           `json:"checksum"`
	Documents []sentDocument   `json:"documents,omitempty"`
	Embedded  []embeddedSigner `json:"embeddedRecipients,omitempty"`
}

// sentDocument records the checksum of a document file sent in an envelope
type sentDocument struct {
	DocumentID string `json:"documentId"`
	File       string `json:"file"`
	SHA256     string `json:"sha256"`
}

func documentChecksums(paths []string) ([]sentDocument, error) {
	documents := make([]sentDocument, 0, len(paths))
	for i, path := range paths {
		checksum, err := crypto.CalculateSHA256FromFile(path)
		if err != nil {
			return nil, err
		}
		documents = append(documents, sentDocument{DocumentID: strconv.Itoa(i + 1), File: path, SHA256: checksum})
	}
	return documents, nil
}

type embeddedSigner struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	RecipientID  string `json:"recipientId,omitempty"`
	ClientUserID string `json:"clientUserId"`
	URL          string `json:"url,omitempty"`
}

func newCreatedEnvelope(summary *docusign.EnvelopeSummary, envelope *docusign.Envelope) (*createdEnvelope, error) {
	checksum, err := docusign.EnvelopeChecksum(envelope)
	if err != nil {
		return nil, err
	}
	out := &createdEnvelope{EnvelopeSummary: summary, Checksum: checksum}
	for _, s := range envelope.Recipients {
		if s.ClientUserID != "" {
			out.Embedded = append(out.Embedded, embeddedSigner{Name: s.Name, Email: s.Email, RecipientID: s.RecipientID, ClientUserID: s.ClientUserID})
		}
	}
	for _, r := range envelope.TemplateRoles {
		if r.ClientUserID != "" {
			out.Embedded = append(out.Embedded, embeddedSigner{Name: r.Name, Email: r.Email, ClientUserID: r.ClientUserID})
		}
	}
	return out, nil
}

// openDocuments opens the document files, the returned function closes them
func openDocuments(paths []string) ([]docusign.Document, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	documents := make([]docusign.Document, 0, len(paths))
	for i, path := range paths {
		f, err := os.Open(path) // #nosec G304 -- files are chosen by the CLI user
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open document: %w", err)
		}
		files = append(files, f)
		documents = append(documents, docusign.Document{
			DocumentID: strconv.Itoa(i + 1),
			Name:       filepath.Base(path),
			Content:    f,
		})
	}
	return documents, closeAll, nil
}

func newEnvelopeCmd(a *app) *cobra.Command {
	envelopeCmd := &cobra.Command{
		Use:   "envelope",
		Short: "Create, inspect and void envelopes",
	}
	envelopeCmd.AddCommand(
		newEnvelopeSendCmd(a),
		newEnvelopeFromTemplateCmd(a),
		newEnvelopeGetCmd(a),
		newEnvelopeRecipientsCmd(a),
		newEnvelopeAddRecipientsCmd(a),
		newEnvelopeUpdateRecipientsCmd(a),
		newEnvelopeDeleteRecipientsCmd(a),
		newEnvelopeViewCmd(a),
		newEnvelopeDocumentsCmd(a),
		newEnvelopeDownloadCmd(a),
		newEnvelopeCertificateCmd(a),
		newEnvelopePageImageCmd(a),
		newEnvelopeVoidCmd(a),
	)
	return envelopeCmd
}

func newEnvelopeSendCmd(a *app) *cobra.Command {
	var (
		opts      envelopeOptions
		documents []string
		signers   []string
		signHere  []string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Create an envelope from documents and send it to signers",
		Example: `  docusign envelope send --subject "Please sign" --document contract.pdf \
    --signer "Jean Français <jean@example.com>" --sign-here 1:100:100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope := opts.envelope()

			var err error
			envelope.Recipients, err = parseSigners(signers, 1, opts.embedded)
			if err != nil {
				return err
			}
			// sign here positions are placed on the first document, every signer gets them
			for _, position := range signHere {
				tab, err := parseTab(docusign.TabSignHere, "1", position)
				if err != nil {
					return err
				}
				for i := range envelope.Recipients {
					envelope.Recipients[i].Tabs = append(envelope.Recipients[i].Tabs, tab)
				}
			}

			var closeDocuments func()
			envelope.Documents, closeDocuments, err = openDocuments(documents)
			if err != nil {
				return err
			}
			defer closeDocuments()

			client, err := a.client()
			if err != nil {
				return err
			}
			summary, err := client.CreateEnvelopeFromDocuments(cmd.Context(), envelope)
			if err != nil {
				return err
			}
			out, err := newCreatedEnvelope(summary, envelope)
			if err != nil {
				return err
			}
			if out.Documents, err = documentChecksums(documents); err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringArrayVar(&documents, "document", nil, "document file (repeatable) [required]")
	cmd.Flags().StringArrayVar(&signers, "signer", nil, "signer as 'Name <email>' (repeatable, in routing order) [required]")
	cmd.Flags().StringArrayVar(&signHere, "sign-here", nil, "sign here tab on the first document as page:x:y (repeatable)")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("signer")
	return cmd
}

func newEnvelopeFromTemplateCmd(a *app) *cobra.Command {
	var (
		opts       envelopeOptions
		templateID string
		roles      []string
	)
	cmd := &cobra.Command{
		Use:     "from-template",
		Short:   "Create an envelope from a server-side template",
		Example: `  docusign envelope from-template --template-id 1a2b... --role "Signer=Jean Français <jean@example.com>"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope := opts.envelope()
			envelope.TemplateID = templateID

			var err error
			envelope.TemplateRoles, err = parseRoles(roles, opts.embedded)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			summary, err := client.CreateEnvelopeFromTemplate(cmd.Context(), envelope)
			if err != nil {
				return err
			}
			out, err := newCreatedEnvelope(summary, envelope)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&templateID, "template-id", "", "template id [required]")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "template role as 'RoleName=Name <email>' (repeatable)")
	_ = cmd.MarkFlagRequired("template-id")
	return cmd
}

func newEnvelopeGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get ENVELOPE_ID",
		Short: "Show the status of an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			info, err := client.GetEnvelope(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, info)
		},
	}
}

func newEnvelopeVoidCmd(a *app) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "void ENVELOPE_ID",
		Short: "Void an in-process envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.VoidEnvelope(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			return writeJSON(cmd, map[string]string{"envelopeId": args[0], "status": "voided"})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason sent to the recipients [required]")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newEnvelopeViewCmd(a *app) *cobra.Command {
	var view docusign.RecipientViewRequest
	cmd := &cobra.Command{
		Use:   "view ENVELOPE_ID",
		Short: "Get the embedded signing URL of a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view.EnvelopeID = args[0]

			client, err := a.client()
			if err != nil {
				return err
			}
			url, err := client.PostRecipientView(cmd.Context(), view)
			if err != nil {
				return err
			}
			return writeJSON(cmd, docusign.ViewURL{URL: url})
		},
	}
	cmd.Flags().StringVar(&view.ClientUserID, "client-user-id", "", "client user id of the embedded recipient [required]")
	cmd.Flags().StringVar(&view.Email, "email", "", "email of the recipient [required]")
	cmd.Flags().StringVar(&view.UserName, "name", "", "name of the recipient [required]")
	cmd.Flags().StringVar(&view.UserID, "user-id", "", "user id of the recipient")
	cmd.Flags().StringVar(&view.ReturnURL, "return-url", "", "URL the signer is redirected to once done [required]")
	cmd.Flags().StringVar(&view.AuthenticationMethod, "authentication-method", "none", "how the recipient was authenticated")
	for _, name := range []string{"client-user-id", "email", "name", "return-url"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// download is the output of the commands saving a file
type download struct {
	File   string `json:"file"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// saveDownload copies body to the output file and closes it.
// When expectedSHA256 is set, a file with another checksum is removed and an error returned.
func saveDownload(cmd *cobra.Command, body io.ReadCloser, output, expectedSHA256 string) error {
	defer body.Close()

	f, err := os.Create(output) // #nosec G304 -- the output file is chosen by the CLI user
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	n, checksum, err := crypto.CopyWithSHA256(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	if expectedSHA256 != "" && !crypto.VerifyChecksum(checksum, expectedSHA256) {
		_ = os.Remove(output)
		return fmt.Errorf("checksum mismatch for %s: got %s, want %s", output, checksum, expectedSHA256)
	}

	slog.Debug("file downloaded", slog.String("file", output), slog.Int64("bytes", n))
	return writeJSON(cmd, download{File: output, Bytes: n, SHA256: checksum})
}

func newEnvelopeDocumentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "documents ENVELOPE_ID",
		Short: "List the documents of an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			documents, err := client.GetEnvelopeDocumentList(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, documents)
		},
	}
}

func newEnvelopeDownloadCmd(a *app) *cobra.Command {
	var output, expectedSHA256 string
	cmd := &cobra.Command{
		Use:   "download ENVELOPE_ID DOCUMENT_ID",
		Short: "Download a document of an envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			body, err := client.GetEnvelopeDocument(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return saveDownload(cmd, body, output, expectedSHA256)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file [required]")
	cmd.Flags().StringVar(&expectedSHA256, "verify-sha256", "", "expected hex SHA-256 of the document, the file is removed on mismatch")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newEnvelopeCertificateCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "certificate ENVELOPE_ID",
		Short: "Download the certificate of completion of an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			body, err := client.GetEnvelopeCertificate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return saveDownload(cmd, body, output, "")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file [required]")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newEnvelopePageImageCmd(a *app) *cobra.Command {
	var (
		output    string
		dpi       int
		maxHeight int
	)
	cmd := &cobra.Command{
		Use:   "page-image ENVELOPE_ID DOCUMENT_ID PAGE",
		Short: "Download the image of a document page",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid page number %q", args[2])
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			body, err := client.GetPageImage(cmd.Context(), args[0], args[1], page, dpi, maxHeight)
			if err != nil {
				return err
			}
			return saveDownload(cmd, body, output, "")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file [required]")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "image resolution (DocuSign default when 0)")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "maximum image height in pixels (no limit when 0)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
