package dtos

// CheckoutDTO is the request body for building a payment request.
type CheckoutDTO struct {
	SessionID   string `json:"sessionId"`
	OrderID     string `json:"orderId"`
	Amount      string `json:"amount"`
	UserID      int64  `json:"userId"`
	ProjectID   int64  `json:"projectId"`
	RewardID    int64  `json:"rewardId"`
	IsAnonymous bool   `json:"isAnonymous"`
}
