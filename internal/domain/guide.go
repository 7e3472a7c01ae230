package domain

type MonthlyEarning struct {
	Month      string  `json:"month" yaml:"month"`
	Amount     float64 `json:"amount" yaml:"amount"`
	TripsCount int     `json:"tripsCount" yaml:"tripsCount"`
}

type MarketTrend struct {
	Activity string `json:"activity" yaml:"activity"`
	Demand   int    `json:"demand" yaml:"demand"`
}

type RegionCount struct {
	Region string `json:"region" yaml:"region"`
	Count  int    `json:"count" yaml:"count"`
}

type AgeRangeCount struct {
	Range string `json:"range" yaml:"range"`
	Count int    `json:"count" yaml:"count"`
}

type ActivityPerformance struct {
	Activity     string `json:"activity" yaml:"activity"`
	Revenue      int    `json:"revenue" yaml:"revenue"`
	Demand       int    `json:"demand" yaml:"demand"`
	Satisfaction int    `json:"satisfaction" yaml:"satisfaction"`
}

type Invoice struct {
	ID         string  `json:"id" yaml:"id"`
	ClientName string  `json:"clientName" yaml:"clientName"`
	Date       string  `json:"date" yaml:"date"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Status     string  `json:"status" yaml:"status"`
}

// Guide is the read-only display profile of the logged-in guide.
type Guide struct {
	ID                  string                `json:"id" yaml:"id"`
	Name                string                `json:"name" yaml:"name"`
	Email               string                `json:"email" yaml:"email"`
	PhoneNumber         string                `json:"phoneNumber" yaml:"phoneNumber"`
	Avatar              string                `json:"avatar" yaml:"avatar"`
	AlboNumber          string                `json:"alboNumber" yaml:"alboNumber"`
	Bio                 string                `json:"bio" yaml:"bio"`
	Reviews             []Review              `json:"reviews" yaml:"reviews"`
	EarningsHistory     []MonthlyEarning      `json:"earningsHistory" yaml:"earningsHistory"`
	MarketTrends        []MarketTrend         `json:"marketTrends" yaml:"marketTrends"`
	ClientOrigins       []RegionCount         `json:"clientOrigins" yaml:"clientOrigins"`
	ClientDemographics  []AgeRangeCount       `json:"clientDemographics" yaml:"clientDemographics"`
	ActivityPerformance []ActivityPerformance `json:"activityPerformance" yaml:"activityPerformance"`
	Invoices            []Invoice             `json:"invoices" yaml:"invoices"`
}
