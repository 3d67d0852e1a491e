package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giygas/interactions-api/entities"
)

// riskTopic is a clinical theme recognized from description keywords.
type riskTopic struct {
	name        string
	keywords    []string
	summary     string // format with drug1, drug2
	sideEffects []string
}

// Checked in order; the first hit is the primary topic.
var riskTopics = []riskTopic{
	{
		name:        "bleeding",
		keywords:    []string{"bleeding", "hemorrhage"},
		summary:     "%s and %s together can cause dangerous bleeding",
		sideEffects: []string{"Bleeding that won't stop", "Easy bruising", "Blood in urine or stool"},
	},
	{
		name:        "breathing",
		keywords:    []string{"respiratory", "breathing"},
		summary:     "%s and %s can make it hard to breathe",
		sideEffects: []string{"Difficulty breathing", "Slow breathing", "Blue lips or fingernails"},
	},
	{
		name:        "serotonin",
		keywords:    []string{"serotonin"},
		summary:     "%s and %s can cause brain chemical poisoning",
		sideEffects: []string{"High fever", "Confusion", "Fast heartbeat", "Muscle stiffness"},
	},
	{
		name:        "sedation",
		keywords:    []string{"sedation", "drowsiness"},
		summary:     "%s and %s make you extremely sleepy",
		sideEffects: []string{"Extreme sleepiness", "Dizziness", "Confusion", "Memory problems"},
	},
	{
		name:        "liver",
		keywords:    []string{"liver", "hepatic"},
		summary:     "%s and %s can damage your liver",
		sideEffects: []string{"Yellow skin or eyes", "Dark urine", "Stomach pain", "Nausea"},
	},
	{
		name:        "kidney",
		keywords:    []string{"kidney", "renal"},
		summary:     "%s and %s can damage your kidneys",
		sideEffects: []string{"Less urination", "Swelling", "Fatigue", "High blood pressure"},
	},
	{
		name:        "heart",
		keywords:    []string{"heart", "cardiac"},
		summary:     "%s and %s can cause heart problems",
		sideEffects: []string{"Irregular heartbeat", "Chest pain", "Shortness of breath", "Dizziness"},
	},
}

var alcoholTerms = []string{"alcohol", "ethanol", "beer", "wine", "liquor", "vodka", "whiskey"}

func (t riskTopic) matches(description string) bool {
	for _, k := range t.keywords {
		if strings.Contains(description, k) {
			return true
		}
	}
	return false
}

// primaryTopic returns the first risk topic the description mentions.
func primaryTopic(description string) string {
	d := strings.ToLower(description)
	for _, t := range riskTopics {
		if t.matches(d) {
			return t.name
		}
	}
	return ""
}

// enrich fills the plain-language fields a source left empty. The input
// is not modified; slices in the result are fresh copies.
func enrich(in entities.Interaction) entities.Interaction {
	out := in
	out.SideEffects = slices.Clone(in.SideEffects)
	out.WhatToAvoid = slices.Clone(in.WhatToAvoid)
	out.Warnings = slices.Clone(in.Warnings)
	out.Contraindications = slices.Clone(in.Contraindications)

	if strings.TrimSpace(out.SimpleSummary) == "" {
		out.SimpleSummary = summaryFor(in)
	}
	if len(out.SideEffects) == 0 {
		out.SideEffects = sideEffectsFor(in)
	}
	if len(out.WhatToAvoid) == 0 {
		out.WhatToAvoid = whatToAvoidFor(in)
	}
	return out
}

func summaryFor(in entities.Interaction) string {
	d := strings.ToLower(in.Description)
	for _, t := range riskTopics {
		if t.matches(d) {
			return fmt.Sprintf(t.summary, in.Drug1, in.Drug2)
		}
	}

	switch in.Severity {
	case entities.SeveritySevere:
		return fmt.Sprintf("%s and %s together are very dangerous", in.Drug1, in.Drug2)
	case entities.SeverityModerate:
		return fmt.Sprintf("%s and %s together can cause problems", in.Drug1, in.Drug2)
	default:
		return fmt.Sprintf("%s and %s may not work well together", in.Drug1, in.Drug2)
	}
}

// sideEffectsFor collects the effects of every topic mentioned, not only
// the primary one.
func sideEffectsFor(in entities.Interaction) []string {
	d := strings.ToLower(in.Description)
	var effects []string
	for _, t := range riskTopics {
		if t.matches(d) {
			for _, e := range t.sideEffects {
				if !slices.Contains(effects, e) {
					effects = append(effects, e)
				}
			}
		}
	}
	if len(effects) > 0 {
		return effects
	}

	switch in.Severity {
	case entities.SeveritySevere:
		return []string{"Serious health problems", "Emergency room visit needed", "Life-threatening effects"}
	case entities.SeverityModerate:
		return []string{"Uncomfortable symptoms", "Medication not working properly", "Need to see doctor"}
	default:
		return []string{"Mild discomfort", "Slight changes in how you feel"}
	}
}

func whatToAvoidFor(in entities.Interaction) []string {
	names := strings.ToLower(in.Drug1 + " " + in.Drug2)
	d := strings.ToLower(in.Description)
	var avoid []string

	for _, term := range alcoholTerms {
		if strings.Contains(names, term) {
			avoid = append(avoid,
				"Any alcoholic drinks (beer, wine, liquor)",
				"Cough medicine with alcohol",
				"Mouthwash with alcohol",
				"Cooking wine",
			)
			break
		}
	}

	if strings.Contains(names, "grapefruit") || strings.Contains(d, "grapefruit") {
		avoid = append(avoid, "Grapefruit (fresh fruit)", "Grapefruit juice", "Grapefruit supplements")
	}

	if strings.Contains(d, "food") || strings.Contains(d, "dairy") {
		avoid = append(avoid,
			"Taking with food if not recommended",
			"Dairy products near medication time",
			"Calcium supplements at same time",
		)
	}

	switch in.Severity {
	case entities.SeveritySevere:
		avoid = append(avoid,
			"Taking both medications together",
			"Missing doctor appointments",
			"Not telling emergency doctors about these medications",
		)
	case entities.SeverityModerate:
		avoid = append(avoid,
			"Taking high doses without doctor approval",
			"Not monitoring for side effects",
			"Skipping regular check-ups",
		)
	}

	if len(avoid) == 0 {
		avoid = []string{
			"Taking medications too close together",
			"Not telling your doctor about both medications",
			"Changing doses without medical advice",
		}
	}
	return avoid
}
