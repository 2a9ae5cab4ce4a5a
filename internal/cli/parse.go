package cli

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
)

// parseSigners converts 'Name <email>' values into signers.
// Recipient ids and routing orders are assigned in order, starting at firstID.
// Embedded signers get a random client user id.
func parseSigners(values []string, firstID int, embedded bool) ([]docusign.Signer, error) {
	signers := make([]docusign.Signer, 0, len(values))
	for i, value := range values {
		address, err := mail.ParseAddress(value)
		if err != nil {
			return nil, fmt.Errorf("invalid signer %q (expected 'Name <email>'): %w", value, err)
		}
		signer := docusign.Signer{
			Email:        address.Address,
			Name:         address.Name,
			RecipientID:  strconv.Itoa(firstID + i),
			RoutingOrder: firstID + i,
		}
		if signer.Name == "" {
			signer.Name = address.Address
		}
		if embedded {
			signer.ClientUserID = uuid.NewString()
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// parseRoles converts 'RoleName=Name <email>' values into template roles
func parseRoles(values []string, embedded bool) ([]docusign.Role, error) {
	roles := make([]docusign.Role, 0, len(values))
	for _, value := range values {
		roleName, recipient, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(roleName) == "" {
			return nil, fmt.Errorf("invalid role %q (expected 'RoleName=Name <email>')", value)
		}
		address, err := mail.ParseAddress(recipient)
		if err != nil {
			return nil, fmt.Errorf("invalid role %q: %w", value, err)
		}
		role := docusign.Role{
			RoleName: strings.TrimSpace(roleName),
			Email:    address.Address,
			Name:     address.Name,
		}
		if role.Name == "" {
			role.Name = address.Address
		}
		if embedded {
			role.ClientUserID = uuid.NewString()
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// parseTab converts a 'page:x:y' position into a tab of kind on documentID
func parseTab(kind docusign.TabKind, documentID, value string) (docusign.Tab, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return docusign.Tab{}, fmt.Errorf("invalid tab position %q (expected page:x:y)", value)
	}
	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return docusign.Tab{}, fmt.Errorf("invalid tab position %q (expected page:x:y)", value)
		}
		numbers[i] = n
	}
	return docusign.NewTab(kind, documentID, numbers[0], numbers[1], numbers[2]), nil
}
