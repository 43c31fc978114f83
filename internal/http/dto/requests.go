package dto

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	CompanyName *string `json:"company_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type QuoteRequest struct {
	IndustryID     string  `json:"industry_id"`
	AdFormatID     string  `json:"ad_format_id"`
	CoverageType   string  `json:"coverage_type"` // 30-mile / state / country
	RegionID       *string `json:"region_id,omitempty"`
	CountryCode    string  `json:"country_code"`
	DurationMonths int     `json:"duration_months"`
	Currency       string  `json:"currency,omitempty"`
}

type CampaignRequest struct {
	Name           string   `json:"name"`
	CountryCode    string   `json:"country_code"`
	IndustryID     string   `json:"industry_id"`
	AdFormatID     string   `json:"ad_format_id"`
	CoverageType   string   `json:"coverage_type"`
	RegionID       *string  `json:"region_id,omitempty"`
	CenterLat      *float64 `json:"center_lat,omitempty"`
	CenterLng      *float64 `json:"center_lng,omitempty"`
	RadiusMiles    *int     `json:"radius_miles,omitempty"`
	DurationMonths int      `json:"duration_months"`
	Currency       string   `json:"currency,omitempty"`
	Headline       string   `json:"headline"`
	Description    *string  `json:"description,omitempty"`
	ImageURL       *string  `json:"image_url,omitempty"`
	CallToAction   *string  `json:"call_to_action,omitempty"`
	LandingURL     string   `json:"landing_url"`
}

type SubmitForReviewRequest struct {
	CampaignID string `json:"campaign_id"`
}

type AdminDecisionRequest struct {
	Action  string `json:"action"` // approve / reject / request_changes
	Message string `json:"message,omitempty"`
}

type RegionRequest struct {
	Name              string  `json:"name"`
	StateCode         string  `json:"state_code"`
	CountryCode       string  `json:"country_code"`
	Population        int64   `json:"population"`
	LandAreaSqMi      float64 `json:"land_area"`
	DensityMultiplier float64 `json:"density_multiplier"`
}

type IndustryRequest struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type AdFormatRequest struct {
	Name     string  `json:"name"`
	BaseRate float64 `json:"base_rate"`
}

type DiscountTiersRequest struct {
	Tiers []DiscountTierItem `json:"tiers"`
}

type DiscountTierItem struct {
	DurationMonths int     `json:"duration_months"`
	Rate           float64 `json:"rate"`
}

type PaymentWebhookRequest struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"` // paid / failed
}
