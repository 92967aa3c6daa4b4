package v1

type HrmClient struct {
	Transport  *Transport
	Timesheets *TimesheetEndpoint
}

// NewHrmClient initializes the API client
func NewHrmClient(baseURL string, token string) *HrmClient {
	t := NewTransport(baseURL, token)
	return &HrmClient{
		Transport:  t,
		Timesheets: &TimesheetEndpoint{transport: t},
	}
}
