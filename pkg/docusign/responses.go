package docusign

// responses.go contains the resources returned by the DocuSign REST API.
// DocuSign encodes most numbers and booleans as strings, the types below keep them as such.

type LoginAccount struct {
	AccountID       string `json:"accountId"`
	AccountIDGUID   string `json:"accountIdGuid"`
	BaseURL         string `json:"baseUrl"`
	Email           string `json:"email"`
	IsDefault       string `json:"isDefault"`
	Name            string `json:"name"`
	SiteDescription string `json:"siteDescription"`
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
}

type LoginInformation struct {
	APIPassword   string         `json:"apiPassword,omitempty"`
	LoginAccounts []LoginAccount `json:"loginAccounts"`
}

type AccountInformation struct {
	AccountIDGUID          string `json:"accountIdGuid"`
	AccountName            string `json:"accountName"`
	BillingPeriodStartDate string `json:"billingPeriodStartDate,omitempty"`
	BillingPeriodEndDate   string `json:"billingPeriodEndDate,omitempty"`
	CreatedDate            string `json:"createdDate,omitempty"`
	CurrentPlanID          string `json:"currentPlanId,omitempty"`
	DistributorCode        string `json:"distributorCode,omitempty"`
	PlanName               string `json:"planName,omitempty"`
	Suspended              string `json:"suspensionStatus,omitempty"`
}

type AccountProvisioning struct {
	DefaultConnectionID        string `json:"defaultConnectionId"`
	DefaultPlanID              string `json:"defaultPlanId"`
	DistributorCode            string `json:"distributorCode"`
	DistributorPassword        string `json:"distributorPassword"`
	PasswordRuleText           string `json:"passwordRuleText,omitempty"`
	PlanPromotionText          string `json:"planPromotionText,omitempty"`
	PurchaseOrderOrPromAllowed string `json:"purchaseOrderOrPromAllowed,omitempty"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type AddressInformation struct {
	Address1        string `json:"address1,omitempty"`
	Address2        string `json:"address2,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	Fax             string `json:"fax,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	StateOrProvince string `json:"stateOrProvince,omitempty"`
}

type CreditCardInformation struct {
	CardNumber      string `json:"cardNumber"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
	NameOnCard      string `json:"nameOnCard"`
	CardType        string `json:"cardType"`
}

type NewAccountUser struct {
	Email        string      `json:"email"`
	FirstName    string      `json:"firstName,omitempty"`
	LastName     string      `json:"lastName,omitempty"`
	MiddleName   string      `json:"middleName,omitempty"`
	Password     string      `json:"password,omitempty"`
	SuffixName   string      `json:"suffixName,omitempty"`
	Title        string      `json:"title,omitempty"`
	UserName     string      `json:"userName"`
	UserSettings []NameValue `json:"userSettings,omitempty"`
}

type PlanInformation struct {
	PlanID string `json:"planId"`
}

// NewAccount is the request body used to create a (subsidiary) account.
type NewAccount struct {
	AccountName           string                 `json:"accountName"`
	AccountSettings       []NameValue            `json:"accountSettings,omitempty"`
	AddressInformation    *AddressInformation    `json:"addressInformation,omitempty"`
	CreditCardInformation *CreditCardInformation `json:"creditCardInformation,omitempty"`
	DistributorCode       string                 `json:"distributorCode,omitempty"`
	DistributorPassword   string                 `json:"distributorPassword,omitempty"`
	InitialUser           NewAccountUser         `json:"initialUser"`
	PlanInformation       PlanInformation        `json:"planInformation"`
}

type NewAccountSummary struct {
	AccountID     string `json:"accountId"`
	AccountIDGUID string `json:"accountIdGuid"`
	AccountName   string `json:"accountName"`
	APIPassword   string `json:"apiPassword,omitempty"`
	BaseURL       string `json:"baseUrl"`
	UserID        string `json:"userId"`
}

type EnvelopeSummary struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime"`
	URI            string `json:"uri"`
}

// EnvelopeInfo is the current state of an envelope as reported by DocuSign.
type EnvelopeInfo struct {
	EnvelopeID            string `json:"envelopeId"`
	Status                string `json:"status"`
	EmailSubject          string `json:"emailSubject"`
	EmailBlurb            string `json:"emailBlurb,omitempty"`
	CreatedDateTime       string `json:"createdDateTime,omitempty"`
	SentDateTime          string `json:"sentDateTime,omitempty"`
	DeliveredDateTime     string `json:"deliveredDateTime,omitempty"`
	CompletedDateTime     string `json:"completedDateTime,omitempty"`
	DeclinedDateTime      string `json:"declinedDateTime,omitempty"`
	VoidedDateTime        string `json:"voidedDateTime,omitempty"`
	VoidedReason          string `json:"voidedReason,omitempty"`
	StatusChangedDateTime string `json:"statusChangedDateTime,omitempty"`
	TemplatesURI          string `json:"templatesUri,omitempty"`
	RecipientsURI         string `json:"recipientsUri,omitempty"`
	DocumentsURI          string `json:"documentsUri,omitempty"`
}

type ErrorDetails struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// RecipientInfo is a recipient of an envelope or template as reported by DocuSign.
type RecipientInfo struct {
	RecipientID       string        `json:"recipientId"`
	RecipientIDGUID   string        `json:"recipientIdGuid,omitempty"`
	ClientUserID      string        `json:"clientUserId,omitempty"`
	Email             string        `json:"email"`
	Name              string        `json:"name"`
	UserID            string        `json:"userId,omitempty"`
	RoleName          string        `json:"roleName,omitempty"`
	RoutingOrder      string        `json:"routingOrder"`
	Status            string        `json:"status,omitempty"`
	SentDateTime      string        `json:"sentDateTime,omitempty"`
	DeliveredDateTime string        `json:"deliveredDateTime,omitempty"`
	SignedDateTime    string        `json:"signedDateTime,omitempty"`
	DeclinedDateTime  string        `json:"declinedDateTime,omitempty"`
	DeclinedReason    string        `json:"declinedReason,omitempty"`
	ErrorDetails      *ErrorDetails `json:"errorDetails,omitempty"`
}

type EnvelopeRecipients struct {
	Signers             []RecipientInfo `json:"signers"`
	CarbonCopies        []RecipientInfo `json:"carbonCopies,omitempty"`
	CertifiedDeliveries []RecipientInfo `json:"certifiedDeliveries,omitempty"`
	RecipientCount      string          `json:"recipientCount,omitempty"`
	CurrentRoutingOrder string          `json:"currentRoutingOrder,omitempty"`
}

type RecipientUpdateResult struct {
	RecipientID  string        `json:"recipientId"`
	ErrorDetails *ErrorDetails `json:"errorDetails,omitempty"`
}

type RecipientsUpdateSummary struct {
	RecipientUpdateResults []RecipientUpdateResult `json:"recipientUpdateResults"`
}

// RecipientViewRequest is the body of a recipient view (embedded signing) request.
// AuthenticationMethod defaults to "none".
type RecipientViewRequest struct {
	AuthenticationMethod string `json:"authenticationMethod"`
	ClientUserID         string `json:"clientUserId"`
	Email                string `json:"email"`
	EnvelopeID           string `json:"envelopeId"`
	ReturnURL            string `json:"returnUrl"`
	UserID               string `json:"userId"`
	UserName             string `json:"userName"`
}

type ViewURL struct {
	URL string `json:"url"`
}

type EnvelopeDocument struct {
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URI        string `json:"uri"`
	Order      string `json:"order,omitempty"`
	Pages      string `json:"pages,omitempty"`
}

type EnvelopeDocumentList struct {
	EnvelopeID        string             `json:"envelopeId"`
	EnvelopeDocuments []EnvelopeDocument `json:"envelopeDocuments"`
}

type TemplateDefinition struct {
	TemplateID   string `json:"templateId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Shared       string `json:"shared,omitempty"`
	Password     string `json:"password,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	PageCount    int    `json:"pageCount,omitempty"`
	URI          string `json:"uri,omitempty"`
}

// EnvelopeTemplate is the full definition of a server-side template.
type EnvelopeTemplate struct {
	EnvelopeTemplateDefinition TemplateDefinition `json:"envelopeTemplateDefinition"`
	EmailSubject               string             `json:"emailSubject"`
	EmailBlurb                 string             `json:"emailBlurb"`
	Documents                  []EnvelopeDocument `json:"documents"`
	Recipients                 EnvelopeRecipients `json:"recipients"`
}

type TemplateList struct {
	EnvelopeTemplates []TemplateDefinition `json:"envelopeTemplates"`
	ResultSetSize     string               `json:"resultSetSize"`
	TotalSetSize      string               `json:"totalSetSize"`
}

// OAuth2Token is returned by the token endpoints (legacy password grant and JWT grant).
type OAuth2Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
