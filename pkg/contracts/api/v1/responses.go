package api

// Response status values
const (
	StatusSuccess = "success"
)

// Response wraps every successful JSON payload.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// Success wraps data in a success envelope.
func Success(data interface{}) Response {
	return Response{Status: StatusSuccess, Data: data}
}

// ColumnsResponse lists the numeric columns of the loaded table.
type ColumnsResponse struct {
	DateColumn string   `json:"date_column"`
	Columns    []string `json:"columns"`
}
