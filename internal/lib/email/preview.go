package email

// PreviewData contains sample template data for local preview,
// keyed by template name then template variable.
var PreviewData = map[string]map[string]string{
	"welcome": {
		"UserFirstName": "Priya",
	},
	"order_confirmation": {
		"UserFirstName": "Priya",
		"OrderNumber":   "ORD-4F9A21C3",
		"PlanName":      "Nebula VPS",
		"InvoiceNumber": "INV-8B3D10E7",
		"Amount":        "1499.00",
	},
}
