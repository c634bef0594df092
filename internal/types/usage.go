package types

// AIFeature identifies a metered AI feature.
type AIFeature string

const (
	FeatureReceiptScan  AIFeature = "receipt_scans"
	FeatureSubstitution AIFeature = "substitutions"
)

// RateLimitStatus is a point-in-time view of a user's quota for one feature.
type RateLimitStatus struct {
	Allowed   bool `json:"allowed"`
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
}

// FeatureUsage pairs used/limit/remaining for one feature in a snapshot.
type FeatureUsage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// UsageSnapshot is the combined daily usage view for both AI features.
type UsageSnapshot struct {
	Date          string       `json:"date"`
	ReceiptScans  FeatureUsage `json:"receipt_scans"`
	Substitutions FeatureUsage `json:"substitutions"`
}
