package crm

import (
	"context"
	"net/http"
	"net/url"

	"github.com/salesdesk/salesdesk/internal/models"
)

// ListCustomers fetches the converted-client list.
func (c *Client) ListCustomers(ctx context.Context, token string) ([]models.Client, error) {
	return list[models.Client](ctx, c, token, "/customers/", "customers")
}

// CreateCustomer submits a client draft and returns the stored record.
func (c *Client) CreateCustomer(ctx context.Context, token string, draft models.ClientDraft) (models.Client, error) {
	var created models.Client
	err := c.do(ctx, token, http.MethodPost, "/customers/", draft, &created)
	return created, err
}

// ListInvoices fetches the invoice list.
func (c *Client) ListInvoices(ctx context.Context, token string) ([]models.Invoice, error) {
	return list[models.Invoice](ctx, c, token, "/invoices/", "invoices")
}

// CreateInvoice submits an invoice draft and returns the stored record.
func (c *Client) CreateInvoice(ctx context.Context, token string, draft models.InvoiceDraft) (models.Invoice, error) {
	var created models.Invoice
	err := c.do(ctx, token, http.MethodPost, "/invoices/", draft, &created)
	return created, err
}

// ListCompanies fetches the unified company list, optionally narrowed to one
// contact type (LEAD or CLIENT) server-side.
func (c *Client) ListCompanies(ctx context.Context, token, contactType string) ([]models.CompanyInfo, error) {
	path := "/companies/"
	if contactType != "" {
		path += "?contact_type=" + url.QueryEscape(contactType)
	}
	return list[models.CompanyInfo](ctx, c, token, path, "companies")
}

// CreateCompany submits a company draft and returns the stored record.
func (c *Client) CreateCompany(ctx context.Context, token string, draft models.CompanyDraft) (models.CompanyInfo, error) {
	var created models.CompanyInfo
	err := c.do(ctx, token, http.MethodPost, "/companies/", draft, &created)
	return created, err
}

// GetSettings fetches the shared branding settings.
func (c *Client) GetSettings(ctx context.Context, token string) (models.Settings, error) {
	var out models.Settings
	err := c.do(ctx, token, http.MethodGet, "/settings/", nil, &out)
	return out, err
}

// UpdateSettings replaces the shared branding settings. The backend keeps
// the existing logo when the submitted one is empty.
func (c *Client) UpdateSettings(ctx context.Context, token string, s models.Settings) (models.Settings, error) {
	var out models.Settings
	err := c.do(ctx, token, http.MethodPut, "/settings/", s, &out)
	return out, err
}
