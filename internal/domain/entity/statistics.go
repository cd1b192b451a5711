package entity

type ProductCounts struct {
	Accepted int `json:"accepted"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// Statistics backs the admin dashboard.
type Statistics struct {
	Products ProductCounts `json:"products"`
	Users    int           `json:"users"`
	Reviews  int           `json:"reviews"`
}
