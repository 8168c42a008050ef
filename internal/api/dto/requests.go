package dto

// SelectFreteRequest picks a rate option for one order.
type SelectFreteRequest struct {
	Option int `json:"option"`
}
