package prepnode

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/salesloop/prepagent/agent/contract"
	toolx "github.com/salesloop/prepagent/agent/tool"
)

// Personal webmail domains never resolve to a company account, so lookups
// against them are skipped outright.
var personalWebmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"live.com":       true,
	"yahoo.com":      true,
	"icloud.com":     true,
	"aol.com":        true,
	"proton.me":      true,
	"protonmail.com": true,
}

// ResolveAccounts tries a CRM account lookup per attendee domain. The first
// successful match fills the company section; every per-attendee failure is
// logged and skipped, never fatal to the brief.
func ResolveAccounts(ctx context.Context, in *GraphState, invoker contractx.ToolInvoker) (*GraphState, error) {
	if in == nil || in.Selected == nil {
		return nil, errNilGraphState
	}

	if !in.Integrations.HasCRM {
		log.Debug().Str("user_id", in.UserID).Msg("crm not connected, company section stays empty")
		return in, nil
	}

	seen := map[string]bool{}
	for _, attendee := range in.Selected.Attendees {
		domain := emailDomain(attendee.Email)
		if domain == "" || personalWebmailDomains[domain] || seen[domain] {
			continue
		}
		seen[domain] = true

		out, derr := invoker.Execute(ctx, toolx.NameCRMAccountByDomain, map[string]any{
			"userId": in.UserID,
			"domain": domain,
		})
		if derr != nil {
			log.Warn().
				Str("user_id", in.UserID).
				Str("domain", domain).
				Str("code", derr.Code).
				Msg("crm lookup failed, skipping attendee domain")
			continue
		}

		res, ok := out.(toolx.AccountByDomainResult)
		if !ok || res.Account == nil {
			continue
		}

		// First success wins; later matches are ignored rather than merged.
		in.Account = res.Account
		break
	}

	return in, nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}
