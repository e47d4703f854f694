package utils

const (
	OrganizationName                      = "Girha Setu"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// DateLayout is the wire format for calendar dates (booking ranges).
	DateLayout = "2006-01-02"

	SupportEmail = "support@girhasetu.in"
)
