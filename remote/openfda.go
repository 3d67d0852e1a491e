package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/giygas/interactions-api/normalizer"
)

const sourceOpenFDA = "openfda"

// DefaultOpenFDABaseURL is the public openFDA root.
const DefaultOpenFDABaseURL = "https://api.fda.gov"

const labelSearchLimit = "5"

// Label is the interaction-relevant text of a drug's product labels.
type Label struct {
	GenericName       string
	Warnings          []string
	Contraindications []string
	DrugInteractions  []string
	AdverseReactions  []string
}

// Mentions returns the interaction paragraphs that name drug.
func (l *Label) Mentions(drug string) []string {
	needle := normalizer.Normalize(drug)
	if needle == "" {
		return nil
	}
	var out []string
	for _, text := range l.DrugInteractions {
		if strings.Contains(strings.ToLower(text), needle) {
			out = append(out, text)
		}
	}
	return out
}

type labelResponse struct {
	Results []struct {
		Warnings          []string `json:"warnings"`
		Contraindications []string `json:"contraindications"`
		DrugInteractions  []string `json:"drug_interactions"`
		AdverseReactions  []string `json:"adverse_reactions"`
		OpenFDA           struct {
			GenericName []string `json:"generic_name"`
			BrandName   []string `json:"brand_name"`
		} `json:"openfda"`
	} `json:"results"`
}

// LabelClient reads drug labels from openFDA.
type LabelClient struct {
	endpoint *endpoint
}

// NewLabelClient builds a client with its own timeout and limiter.
func NewLabelClient(baseURL string, timeout time.Duration, perSecond float64) *LabelClient {
	if baseURL == "" {
		baseURL = DefaultOpenFDABaseURL
	}
	return &LabelClient{endpoint: newEndpoint(baseURL, timeout, perSecond, userAgent)}
}

// LabelInfo merges the text sections of up to five labels matching the
// generic name. No labels and failures both return false.
func (c *LabelClient) LabelInfo(ctx context.Context, name string) (*Label, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	query := url.Values{
		"search": {fmt.Sprintf("openfda.generic_name:%q", name)},
		"limit":  {labelSearchLimit},
	}

	var resp labelResponse
	if err := c.endpoint.getJSON(ctx, "/drug/label.json", query, &resp); err != nil {
		if !errors.Is(err, errNotFound) {
			recordFailure(ctx, sourceOpenFDA, "label", err)
		}
		return nil, false
	}
	if len(resp.Results) == 0 {
		return nil, false
	}

	label := &Label{GenericName: name}
	if generic := resp.Results[0].OpenFDA.GenericName; len(generic) > 0 {
		label.GenericName = generic[0]
	}
	for _, r := range resp.Results {
		label.Warnings = append(label.Warnings, r.Warnings...)
		label.Contraindications = append(label.Contraindications, r.Contraindications...)
		label.DrugInteractions = append(label.DrugInteractions, r.DrugInteractions...)
		label.AdverseReactions = append(label.AdverseReactions, r.AdverseReactions...)
	}
	return label, true
}

// Probe checks that the service answers.
func (c *LabelClient) Probe(ctx context.Context) error {
	var resp labelResponse
	err := c.endpoint.getJSON(ctx, "/drug/label.json", url.Values{"limit": {"1"}}, &resp)
	if errors.Is(err, errNotFound) {
		return nil
	}
	return err
}
