package model

// Organization is the registry tuple for one organization, decoded at the
// gateway boundary.
type Organization struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Mission      string `json:"mission"`
	CreationDate uint64 `json:"creation_date"`
	Admin        string `json:"admin"`
}

// Member roles are derived, never stored on chain: Admin wins over
// Treasurer, Treasurer over Member.
const (
	RoleAdmin     = "Admin"
	RoleTreasurer = "Treasurer"
	RoleMember    = "Member"
)

// MembershipStatus reports how a given address relates to an organization.
type MembershipStatus struct {
	IsAdmin     bool `json:"is_admin"`
	IsMember    bool `json:"is_member"`
	IsTreasurer bool `json:"is_treasurer"`
}
