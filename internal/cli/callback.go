package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/docusign-client/pkg/connect"
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

// notificationFlags describe the notification simulated by the callback commands
type notificationFlags struct {
	envelopeID     string
	status         string
	subject        string
	signers        []string
	timeZoneOffset int
}

func (f *notificationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envelopeID, "envelope-id", "", "envelope id (random when not set)")
	cmd.Flags().StringVar(&f.status, "status", string(docusign.EnvelopeStatusCompleted), "envelope status")
	cmd.Flags().StringVar(&f.subject, "subject", "", "envelope subject")
	cmd.Flags().StringArrayVar(&f.signers, "signer", nil, "signer as 'Name <email>' (repeatable, in routing order)")
	cmd.Flags().IntVar(&f.timeZoneOffset, "time-zone-offset", 0, "time zone offset of the notification times, in hours")
}

// data builds the notification: every status of the envelope lifecycle up to the requested status
// gets the current time, recipients follow the envelope.
func (f *notificationFlags) data(now time.Time) (connect.NotificationData, error) {
	status := docusign.EnvelopeStatus(f.status)
	if !status.IsValid() {
		return connect.NotificationData{}, fmt.Errorf("invalid envelope status %q", f.status)
	}

	data := connect.NotificationData{
		EnvelopeID:     f.envelopeID,
		Subject:        f.subject,
		Status:         string(status),
		TimeGenerated:  now,
		Created:        now,
		TimeZoneOffset: f.timeZoneOffset,
		TimeZone:       fmt.Sprintf("UTC%+d", f.timeZoneOffset),
	}
	if data.EnvelopeID == "" {
		data.EnvelopeID = uuid.NewString()
	}

	// recipients of a draft envelope have no status time
	recipientStatus := docusign.RecipientStatus("Created")
	switch status {
	case docusign.EnvelopeStatusSent:
		data.Sent = now
		recipientStatus = docusign.RecipientStatusSent
	case docusign.EnvelopeStatusDelivered:
		data.Sent, data.Delivered = now, now
		recipientStatus = docusign.RecipientStatusDelivered
	case docusign.EnvelopeStatusCompleted:
		data.Sent, data.Delivered, data.Signed, data.Completed = now, now, now, now
		recipientStatus = docusign.RecipientStatusCompleted
	case docusign.EnvelopeStatusDeclined:
		data.Sent, data.Delivered, data.Declined = now, now, now
		recipientStatus = docusign.RecipientStatusDeclined
	case docusign.EnvelopeStatusVoided:
		data.Sent, data.Voided = now, now
		data.VoidReason = "voided"
		recipientStatus = docusign.RecipientStatusSent
	}

	for i, value := range f.signers {
		address, err := mail.ParseAddress(value)
		if err != nil {
			return connect.NotificationData{}, fmt.Errorf("invalid signer %q (expected 'Name <email>'): %w", value, err)
		}
		recipient := connect.RecipientData{
			Type:         "Signer",
			Email:        address.Address,
			UserName:     address.Name,
			RoutingOrder: i + 1,
			Status:       string(recipientStatus),
			RecipientID:  strconv.Itoa(i + 1),
			ClientUserID: uuid.NewString(),
			Sent:         data.Sent,
			Delivered:    data.Delivered,
			Signed:       data.Signed,
			Declined:     data.Declined,
		}
		if recipientStatus == docusign.RecipientStatusDeclined {
			recipient.DeclineReason = "declined"
		}
		data.Recipients = append(data.Recipients, recipient)
	}
	return data, nil
}

func newCallbackCmd(a *app) *cobra.Command {
	callbackCmd := &cobra.Command{
		Use:   "callback",
		Short: "Simulate DocuSign Connect notifications",
	}
	callbackCmd.AddCommand(newCallbackRenderCmd(), newCallbackPostCmd(a))
	return callbackCmd
}

func newCallbackRenderCmd() *cobra.Command {
	var flags notificationFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a Connect notification (XML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := flags.data(time.Now())
			if err != nil {
				return err
			}
			body, err := connect.Render(data)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newCallbackPostCmd(a *app) *cobra.Command {
	var (
		flags    notificationFlags
		file     string
		hmacKeys []string
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "post URL",
		Short: "Post a Connect notification to a listener",
		Long: `Post a Connect notification to a listener, e.g the connect-receiver /connect endpoint.

The notification is read from --file or built from the flags. Each --hmac-key adds an
X-DocuSign-Signature-N header, as DocuSign does when HMAC is enabled on the Connect configuration.`,
		Example: `  docusign callback post http://localhost:8080/connect --status Sent --signer "Jean <jean@example.com>" --hmac-key $KEY`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			var err error
			if file != "" {
				body, err = os.ReadFile(file) // #nosec G304 -- the file is chosen by the CLI user
				if err != nil {
					return fmt.Errorf("failed to read notification: %w", err)
				}
			} else {
				data, err := flags.data(time.Now())
				if err != nil {
					return err
				}
				if body, err = connect.Render(data); err != nil {
					return err
				}
			}

			status, err := connect.Post(cmd.Context(), &http.Client{Timeout: timeout}, args[0], body, hmacKeys...)
			if err != nil {
				return err
			}
			a.logger.Info("notification posted", slog.String("url", args[0]), slog.Int("status", status))
			if status != http.StatusOK {
				return fmt.Errorf("listener answered %d %s", status, http.StatusText(status))
			}
			return writeJSON(cmd, map[string]int{"status": status})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "notification file (XML)")
	cmd.Flags().StringArrayVar(&hmacKeys, "hmac-key", nil, "HMAC key signing the notification (repeatable)")
	cmd.Flags().DurationVar(&timeout, "post-timeout", 30*time.Second, "timeout of the request")
	return cmd
}
