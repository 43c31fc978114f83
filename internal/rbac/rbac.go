package rbac

// Role constants
const (
	RoleAdvertiser = "advertiser"
	RoleAdmin      = "admin"
)

// Permission constants
const (
	PermCreateCampaign   = "create_campaign"
	PermSubmitCampaign   = "submit_campaign"
	PermActivateCampaign = "activate_campaign"
	PermReviewCampaign   = "review_campaign"
	PermConfigurePricing = "configure_pricing"
	PermManageRegions    = "manage_regions"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleAdvertiser: {
		PermCreateCampaign, PermSubmitCampaign, PermActivateCampaign,
	},
	RoleAdmin: {
		PermReviewCampaign, PermConfigurePricing, PermManageRegions,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
