package crm

import (
	"context"
	"net/http"

	"github.com/salesdesk/salesdesk/internal/models"
)

// LoginResult is the credential payload issued by the backend.
type LoginResult struct {
	Token     string `json:"token"`
	Superuser bool   `json:"is_superuser"`
	Username  string `json:"username"`
}

// Login exchanges credentials for an API token. The only unauthenticated
// call in the client.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	err := c.send(ctx, "", http.MethodPost, "/employee/login/", body, &out)
	return out, err
}

// Logout invalidates the token server-side. A failure only means the token
// outlives the session; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, token, http.MethodPost, "/employee/logout/", nil, nil)
}

// ListEmployees fetches the employee roster.
func (c *Client) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	return list[models.Employee](ctx, c, token, "/employee/employees/", "employees")
}

// CreateEmployee registers a new employee account.
func (c *Client) CreateEmployee(ctx context.Context, token string, draft models.EmployeeDraft) (models.Employee, error) {
	var created models.Employee
	err := c.do(ctx, token, http.MethodPost, "/employee/employees/", draft, &created)
	return created, err
}
