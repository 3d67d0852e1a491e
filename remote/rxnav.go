package remote

import (
	"context"
	"net/url"
	"strings"
	"time"
)

const sourceRxNav = "rxnav"

// DefaultRxNavBaseURL is the public RxNav REST root.
const DefaultRxNavBaseURL = "https://rxnav.nlm.nih.gov/REST"

// Name search modes understood by rxcui.json, tried in this order.
var searchModes = []string{"0", "1", "2"}

// Finding is one flattened interaction pair from the terminology service.
type Finding struct {
	PartnerName string
	Severity    string
	Description string
}

// RxNavClient resolves names to RxCUIs and lists their interactions.
type RxNavClient struct {
	endpoint *endpoint
}

// NewRxNavClient builds a client with its own timeout and limiter.
func NewRxNavClient(baseURL string, timeout time.Duration, perSecond float64) *RxNavClient {
	if baseURL == "" {
		baseURL = DefaultRxNavBaseURL
	}
	return &RxNavClient{endpoint: newEndpoint(baseURL, timeout, perSecond, userAgent)}
}

type rxcuiResponse struct {
	IDGroup struct {
		RxNormID []string `json:"rxnormId"`
	} `json:"idGroup"`
}

type spellingResponse struct {
	SuggestionGroup struct {
		SuggestionList struct {
			Suggestion []string `json:"suggestion"`
		} `json:"suggestionList"`
	} `json:"suggestionGroup"`
}

type conceptItem struct {
	Name  string `json:"name"`
	RxCUI string `json:"rxcui"`
}

type interactionResponse struct {
	InteractionTypeGroup []struct {
		InteractionType []struct {
			Comment         string `json:"comment"`
			InteractionPair []struct {
				InteractionConcept []struct {
					MinConceptItem    conceptItem `json:"minConceptItem"`
					SourceConceptItem conceptItem `json:"sourceConceptItem"`
				} `json:"interactionConcept"`
				Severity    string `json:"severity"`
				Description string `json:"description"`
			} `json:"interactionPair"`
		} `json:"interactionType"`
	} `json:"interactionTypeGroup"`
}

// ResolveID tries exact, approximate and normalized search, then one
// spelling suggestion. Unknown names and failures both return false.
func (c *RxNavClient) ResolveID(ctx context.Context, name string) (string, bool) {
	return c.resolveID(ctx, strings.TrimSpace(name), true)
}

func (c *RxNavClient) resolveID(ctx context.Context, name string, allowSuggestion bool) (string, bool) {
	if name == "" {
		return "", false
	}

	for _, mode := range searchModes {
		var resp rxcuiResponse
		err := c.endpoint.getJSON(ctx, "/rxcui.json", url.Values{"name": {name}, "search": {mode}}, &resp)
		if err != nil {
			recordFailure(ctx, sourceRxNav, "resolve_id", err)
			return "", false
		}
		for _, id := range resp.IDGroup.RxNormID {
			if id != "" {
				return id, true
			}
		}
	}

	if !allowSuggestion {
		return "", false
	}

	var spelling spellingResponse
	if err := c.endpoint.getJSON(ctx, "/spellingsuggestions.json", url.Values{"name": {name}}, &spelling); err != nil {
		recordFailure(ctx, sourceRxNav, "spelling", err)
		return "", false
	}
	suggestions := spelling.SuggestionGroup.SuggestionList.Suggestion
	if len(suggestions) == 0 || strings.EqualFold(suggestions[0], name) {
		return "", false
	}

	return c.resolveID(ctx, suggestions[0], false)
}

// InteractionsForID lists every interaction pair for an RxCUI. Missing
// nested arrays are tolerated; false means the call itself failed.
func (c *RxNavClient) InteractionsForID(ctx context.Context, id string) ([]Finding, bool) {
	var resp interactionResponse
	if err := c.endpoint.getJSON(ctx, "/interaction/interaction.json", url.Values{"rxcui": {id}}, &resp); err != nil {
		recordFailure(ctx, sourceRxNav, "interactions", err)
		return nil, false
	}

	var findings []Finding
	for _, group := range resp.InteractionTypeGroup {
		for _, itype := range group.InteractionType {
			for _, pair := range itype.InteractionPair {
				if len(pair.InteractionConcept) == 0 {
					continue
				}
				last := pair.InteractionConcept[len(pair.InteractionConcept)-1]
				partner := last.MinConceptItem.Name
				if partner == "" {
					partner = last.SourceConceptItem.Name
				}
				if partner == "" {
					continue
				}

				description := strings.TrimSpace(pair.Description)
				if description == "" {
					description = strings.TrimSpace(itype.Comment)
				}
				if description == "" {
					description = "Potential drug interaction detected. Consult healthcare provider."
				}

				severity := pair.Severity
				if severity == "" {
					severity = "moderate"
				}

				findings = append(findings, Finding{
					PartnerName: partner,
					Severity:    severity,
					Description: description,
				})
			}
		}
	}

	return findings, true
}

// Probe checks that the service answers.
func (c *RxNavClient) Probe(ctx context.Context) error {
	var resp struct {
		Version string `json:"version"`
	}
	return c.endpoint.getJSON(ctx, "/version.json", nil, &resp)
}
