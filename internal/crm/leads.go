package crm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/salesdesk/salesdesk/internal/models"
)

// ListLeads fetches the full lead list.
func (c *Client) ListLeads(ctx context.Context, token string) ([]models.Lead, error) {
	return list[models.Lead](ctx, c, token, "/leads/", "leads")
}

// CreateLead submits a draft and returns the server-authoritative record,
// including the id and initial score the backend chose.
func (c *Client) CreateLead(ctx context.Context, token string, draft models.LeadDraft) (models.Lead, error) {
	var created models.Lead
	err := c.do(ctx, token, http.MethodPost, "/leads/", draft, &created)
	return created, err
}

// RescoreLead asks the backend to recompute one lead's score and returns the
// new value. Concurrent rescores of the same lead share a single upstream
// call; the backend is only hit once per row at a time.
func (c *Client) RescoreLead(ctx context.Context, token string, id int) (float64, error) {
	if token == "" {
		return 0, ErrNoToken
	}
	v, err, _ := c.rows.Do(fmt.Sprintf("rescore:%d", id), func() (any, error) {
		var out struct {
			Score float64 `json:"score"`
		}
		if err := c.do(ctx, token, http.MethodPost, fmt.Sprintf("/leads/%d/score/", id), nil, &out); err != nil {
			return nil, err
		}
		return out.Score, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// AssignLead associates a lead with one responsible employee and returns the
// updated lead. Serialized per lead like RescoreLead.
func (c *Client) AssignLead(ctx context.Context, token string, leadID, employeeID int) (models.Lead, error) {
	if token == "" {
		return models.Lead{}, ErrNoToken
	}
	body := map[string]int{"employee_id": employeeID}
	v, err, _ := c.rows.Do(fmt.Sprintf("assign:%d", leadID), func() (any, error) {
		var updated models.Lead
		if err := c.do(ctx, token, http.MethodPost, fmt.Sprintf("/leads/%d/assign/", leadID), body, &updated); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return models.Lead{}, err
	}
	return v.(models.Lead), nil
}

// ConvertLead turns a lead into a client. The backend removes it from the
// lead list and returns the new client record with its own identity.
func (c *Client) ConvertLead(ctx context.Context, token string, leadID int) (models.Client, error) {
	var converted models.Client
	err := c.do(ctx, token, http.MethodPost, "/leads/convert/", map[string]int{"lead_id": leadID}, &converted)
	return converted, err
}
