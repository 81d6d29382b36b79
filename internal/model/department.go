package model

// Department is a row of the departments sheet. Replaces the ad-hoc
// client-side custom-department list with a shared server-side one.
type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
