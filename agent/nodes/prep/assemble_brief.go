package prepnode

import (
	contractx "github.com/salesloop/prepagent/agent/contract"
)

// AssembleBrief builds the final artifact. Stakeholders fill unconditionally
// from the attendee list; the company section fills only when a CRM match
// landed. The remaining sections are extension slots and stay empty here.
func AssembleBrief(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Selected == nil {
		return GraphOutput{}, errNilGraphState
	}

	brief := contractx.NewPrepBrief(in.Selected.ID)
	for _, attendee := range in.Selected.Attendees {
		if attendee.Email == "" {
			continue
		}
		brief.Sections.Stakeholders = append(brief.Sections.Stakeholders, attendee.Label())
	}

	if in.Account != nil {
		brief.Sections.CompanyBrief = in.Account.Name
		if in.Account.Industry != "" {
			brief.Sections.CompanyBrief = in.Account.Name + " - " + in.Account.Industry
		}
	}

	return GraphOutput{Brief: brief}, nil
}
