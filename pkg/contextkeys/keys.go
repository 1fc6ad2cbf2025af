package contextkeys

type contextKey string

const (
	RequesterKey contextKey = "Requester"
	RequestIDKey contextKey = "RequestID"
)
