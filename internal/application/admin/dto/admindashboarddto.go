package dto

// AdminDashboardResponse is the platform snapshot shown on the admin console.
type AdminDashboardResponse struct {
	Users      UserStats        `json:"users"`
	Agents     AgentStats       `json:"agents"`
	Properties map[string]int64 `json:"properties"`
	Activity   ActivityStats    `json:"activity"`
	Revenue    RevenueStats     `json:"revenue"`
}

type UserStats struct {
	Total  int64 `json:"total"`
	Buyers int64 `json:"buyers"`
	Agents int64 `json:"agents"`
	Admins int64 `json:"admins"`
}

type AgentStats struct {
	Profiles  int64 `json:"profiles"`
	Verified  int64 `json:"verified"`
	Suspended int64 `json:"suspended"`
}

type ActivityStats struct {
	BuyerProfiles int64 `json:"buyer_profiles"`
	Purchases     int64 `json:"purchases"`
	Leads         int64 `json:"leads"`
}

// RevenueStats sums successful payments in minor units.
type RevenueStats struct {
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}
