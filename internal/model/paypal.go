package model

// Wire types for the PayPal REST API subset this service touches.

type PaypalTokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type PaypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PaypalCapture struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Amount PaypalAmount `json:"amount"`
}

type PaypalPayments struct {
	Captures []PaypalCapture `json:"captures"`
}

type PaypalPurchaseUnit struct {
	ReferenceID string         `json:"reference_id"`
	Payments    PaypalPayments `json:"payments"`
}

type PaypalOrderResult struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Links         []PaypalLink         `json:"links"`
	PurchaseUnits []PaypalPurchaseUnit `json:"purchase_units"`
}

// PaypalOrderStatusCompleted is the only status that counts as captured.
const PaypalOrderStatusCompleted = "COMPLETED"
