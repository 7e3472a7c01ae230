package domain

type SportsPassport struct {
	Level           string   `json:"level" yaml:"level"`
	Verified        bool     `json:"verified" yaml:"verified"`
	YearsExperience int      `json:"yearsExperience" yaml:"yearsExperience"`
	LastAscents     []string `json:"lastAscents" yaml:"lastAscents"`
	FitnessScore    int      `json:"fitnessScore" yaml:"fitnessScore"`
	TechnicalScore  int      `json:"technicalScore" yaml:"technicalScore"`
}

type BillingInfo struct {
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	ZipCode string `json:"zipCode" yaml:"zipCode"`
	Country string `json:"country" yaml:"country"`
	TaxID   string `json:"taxId" yaml:"taxId"`
}

type Review struct {
	ID         string `json:"id" yaml:"id"`
	AuthorName string `json:"authorName" yaml:"authorName"`
	Rating     int    `json:"rating" yaml:"rating"`
	Comment    string `json:"comment" yaml:"comment"`
	Date       string `json:"date" yaml:"date"`
	Role       string `json:"role" yaml:"role"`
}

type Transaction struct {
	ID          string  `json:"id" yaml:"id"`
	Date        string  `json:"date" yaml:"date"`
	Description string  `json:"description" yaml:"description"`
	Amount      float64 `json:"amount" yaml:"amount"`
	Type        string  `json:"type" yaml:"type"`
	Status      string  `json:"status" yaml:"status"`
	GuideName   string  `json:"guideName" yaml:"guideName"`
	TripTitle   string  `json:"tripTitle" yaml:"tripTitle"`
	Method      string  `json:"method" yaml:"method"`
}

// Client is a marketplace customer. RequestedDate is only set on the copy
// attached to a trip's enrolled or pending list.
type Client struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Email         string         `json:"email" yaml:"email"`
	Passport      SportsPassport `json:"passport" yaml:"passport"`
	BillingInfo   *BillingInfo   `json:"billingInfo,omitempty" yaml:"billingInfo,omitempty"`
	Reviews       []Review       `json:"reviews" yaml:"reviews"`
	Transactions  []Transaction  `json:"transactions" yaml:"transactions"`
	RequestedDate string         `json:"requestedDate,omitempty" yaml:"requestedDate,omitempty"`
}

func (c Client) Clone() Client {
	out := c
	out.Passport.LastAscents = append([]string(nil), c.Passport.LastAscents...)
	if c.BillingInfo != nil {
		b := *c.BillingInfo
		out.BillingInfo = &b
	}
	out.Reviews = append([]Review(nil), c.Reviews...)
	out.Transactions = append([]Transaction(nil), c.Transactions...)
	return out
}

// WithRequestedDate returns a detached copy carrying the given request date.
func (c Client) WithRequestedDate(date string) Client {
	out := c.Clone()
	out.RequestedDate = date
	return out
}
