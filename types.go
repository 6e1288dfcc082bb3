package main

// Request/response DTOs. Keep them minimal and explicit.

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ChainID  string `json:"chainId,omitempty"` // ledger identity, optional
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

type quantityStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

type cropSummaryResp struct {
	Crops             int            `json:"crops"`
	Processed         int            `json:"processed"`
	Received          int            `json:"received"`
	ByCropType        map[string]int `json:"byCropType"`
	HarvestQuantity   *quantityStats `json:"harvestQuantity,omitempty"`
	ProcessedQuantity *quantityStats `json:"processedQuantity,omitempty"`
}
