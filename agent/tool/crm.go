package tool

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

const NameCRMAccountByDomain = "crm.account_by_domain.v1"

var crmAccountByDomainSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"domain": {"type": "string", "minLength": 1}
	},
	"required": ["userId", "domain"],
	"additionalProperties": false
}`)

type AccountByDomainResult struct {
	Domain  string             `json:"domain"`
	Account *contractx.Account `json:"account"`
}

// CRMAccountByDomain looks up the CRM account whose domain matches an
// attendee's email domain. A missing match is a null account, not an error.
func CRMAccountByDomain() *contractx.Contract {
	return &contractx.Contract{
		Name:        NameCRMAccountByDomain,
		Version:     "v1",
		Description: "Look up a CRM account by company email domain, e.g. bigco.com.",
		InputSchema: crmAccountByDomainSchema,
		Handler:     handleCRMAccountByDomain,
	}
}

func handleCRMAccountByDomain(ctx context.Context, args map[string]any, ec *contractx.ExecutionContext) (any, error) {
	domain := strings.ToLower(strings.TrimSpace(args["domain"].(string)))

	rec, err := ec.Store.GetIntegration(ctx, ec.UserID, contractx.KindCRM)
	if err != nil {
		return nil, contractx.Internal("crm integration lookup failed", err)
	}
	if !rec.Connected(time.Now().UTC()) {
		return nil, contractx.NotConnected(contractx.KindCRM)
	}
	if ec.CRM == nil {
		return nil, contractx.Internal("crm service is not configured", nil)
	}

	account, err := ec.CRM.LookupAccountByDomain(ctx, ec.UserID, domain)
	if err != nil {
		return nil, contractx.Internal("crm lookup failed", err)
	}
	return AccountByDomainResult{Domain: domain, Account: account}, nil
}
