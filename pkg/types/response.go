package types

// MessageBody is the success envelope used by the JSON cart routes.
type MessageBody struct {
	Message    string `json:"message"`
	CartItemID *int64 `json:"cartItemId,omitempty"`
	ProductID  string `json:"productId,omitempty"`
}

// ErrorBody is written for every JSON failure.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// HealthBody reports liveness and readiness state.
type HealthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
