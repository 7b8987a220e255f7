package email

// SendWelcomeEmail sends a welcome email to a new portal account.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to StellarHost!",
		TemplateWelcome,
		data,
	)
}

// SendOrderConfirmationEmail confirms a paid order, referencing the
// order number, plan name, and invoice number.
func (c *Client) SendOrderConfirmationEmail(to, firstName, orderNumber, planName, invoiceNumber, amount string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"OrderNumber":   orderNumber,
		"PlanName":      planName,
		"InvoiceNumber": invoiceNumber,
		"Amount":        amount,
	}

	return c.SendEmail(
		to,
		"Your StellarHost order is confirmed",
		TemplateOrderConfirmation,
		data,
	)
}
