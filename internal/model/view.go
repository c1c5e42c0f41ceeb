package model

// View records are denormalized, display-ready projections: every numeric,
// address, and timestamp field is already converted, and parent fields are
// resolved inline. They are recomputed on every fetch and never persisted
// (the snapshot export writes copies, it is not a cache).

// OrganizationView is one row of the organizations listing.
type OrganizationView struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Mission     string `json:"mission"`
	Created     string `json:"created"`
	Admin       string `json:"admin"`
	AdminLabel  string `json:"admin_label"`
	MemberCount uint64 `json:"member_count"`
}

// MemberView is one member row with its derived role.
type MemberView struct {
	Address string `json:"address"`
	Label   string `json:"label"`
	Role    string `json:"role"`
}

// OrganizationDetailView merges the organization with its member roster and
// its campaigns.
type OrganizationDetailView struct {
	OrganizationView
	Members   []MemberView   `json:"members"`
	Campaigns []CampaignView `json:"campaigns"`
}

// CampaignView is one row of the campaigns listing. Goal and Collected are
// fiat display strings; Organization is the truncated address label of the
// owning organization.
type CampaignView struct {
	ID                  uint64 `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Goal                string `json:"goal"`
	Collected           string `json:"collected"`
	Deadline            string `json:"deadline"`
	FundingType         string `json:"funding_type"`
	Status              string `json:"status"`
	Organization        string `json:"organization"`
	OrganizationAddress string `json:"organization_address"`
}

// ExpenseItemView is one itemized budget line.
type ExpenseItemView struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// CampaignDetailView merges the campaign with its itemized budget.
type CampaignDetailView struct {
	CampaignView
	Items []ExpenseItemView `json:"items"`
}

// ExpenseView is one row of the expenses listing, flattened with its
// campaign's name and organization label.
type ExpenseView struct {
	ID                uint64 `json:"id"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	ReceiptURL        string `json:"receipt_url"`
	Requester         string `json:"requester"`
	RequesterAddress  string `json:"requester_address"`
	CampaignID        uint64 `json:"campaign_id"`
	CampaignName      string `json:"campaign_name"`
	Organization      string `json:"organization"`
	Status            string `json:"status"`
	Submitted         string `json:"submitted"`
	RequiredApprovals uint64 `json:"required_approvals"`
	ApprovalCount     uint64 `json:"approval_count"`
}

// ApprovalView is one approval-history row.
type ApprovalView struct {
	Approver        string `json:"approver"`
	ApproverAddress string `json:"approver_address"`
	Date            string `json:"date"`
	TxHash          string `json:"tx_hash"`
}

// ExpenseDetailView merges the expense with its approval history.
type ExpenseDetailView struct {
	ExpenseView
	Approvals []ApprovalView `json:"approvals"`
}

// OrganizationListing is an ordered page of organization view records.
type OrganizationListing struct {
	Organizations []OrganizationView `json:"organizations"`
	Total         uint64             `json:"total"`
	HasMore       bool               `json:"has_more"`
}

// CampaignListing is an ordered page of campaign view records.
type CampaignListing struct {
	Campaigns []CampaignView `json:"campaigns"`
	Total     uint64         `json:"total"`
	HasMore   bool           `json:"has_more"`
}

// ExpenseListing is an ordered page of expense view records.
type ExpenseListing struct {
	Expenses []ExpenseView `json:"expenses"`
	Total    uint64        `json:"total"`
	HasMore  bool          `json:"has_more"`
}
