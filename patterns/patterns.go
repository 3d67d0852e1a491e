// Package patterns recognizes dangerous drug categories in free-text names
// so that well-known deadly combinations are reported even when no curated
// row or remote source covers the exact pair.
package patterns

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/normalizer"
)

// Terms shorter than this must match a whole word.
const minSubstringTerm = 4

type category struct {
	name  string
	terms []string
}

var (
	alcohol = category{"alcohol", []string{
		"alcohol", "ethanol", "beer", "wine", "liquor", "vodka", "whiskey", "whisky",
		"tequila", "brandy", "rum", "gin",
	}}
	benzodiazepine = category{"benzodiazepine", []string{
		"xanax", "alprazolam", "ativan", "lorazepam", "valium", "diazepam", "klonopin",
		"clonazepam", "temazepam", "restoril", "midazolam", "benzodiazepine",
	}}
	opioid = category{"opioid", []string{
		"oxycodone", "hydrocodone", "morphine", "fentanyl", "tramadol", "codeine", "vicodin",
		"percocet", "oxycontin", "norco", "lortab", "hydromorphone", "dilaudid", "methadone", "opioid",
	}}
	sedative = category{"sedative", []string{
		"ambien", "zolpidem", "lunesta", "eszopiclone", "sonata", "zaleplon",
	}}
	maoi = category{"maoi", []string{
		"nardil", "phenelzine", "parnate", "tranylcypromine", "marplan", "isocarboxazid",
		"emsam", "selegiline", "maoi",
	}}
	ssri = category{"ssri", []string{
		"prozac", "fluoxetine", "zoloft", "sertraline", "paxil", "paroxetine", "celexa",
		"citalopram", "lexapro", "escitalopram", "fluvoxamine", "ssri",
	}}
	anticoagulant = category{"anticoagulant", []string{
		"warfarin", "coumadin", "jantoven", "heparin", "enoxaparin", "lovenox", "rivaroxaban",
		"xarelto", "apixaban", "eliquis", "dabigatran", "pradaxa",
	}}
	nsaid = category{"nsaid", []string{
		"aspirin", "ibuprofen", "advil", "motrin", "naproxen", "aleve", "diclofenac", "voltaren",
		"celecoxib", "celebrex", "meloxicam", "indomethacin", "bayer", "bufferin", "nsaid",
	}}
	// "statin" alone would also catch nystatin.
	statin = category{"statin", []string{
		"lipitor", "atorvastatin", "zocor", "simvastatin", "crestor", "rosuvastatin",
		"pravachol", "pravastatin", "lovastatin",
	}}
	grapefruit = category{"grapefruit", []string{"grapefruit", "pomelo"}}
)

// has reports whether the normalized name contains one of the terms.
func (c category) has(name string) bool {
	for _, term := range c.terms {
		if len(term) < minSubstringTerm {
			if normalizer.ContainsWord(name, term) {
				return true
			}
			continue
		}
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// rule fires when one drug is in x and the other in y. xDrug and yDrug are
// the display names of the drugs matched on each side.
type rule struct {
	x, y           category
	severity       entities.Severity
	describe       func(xDrug, yDrug string) (description, summary string)
	recommendation string
	sideEffects    []string
	whatToAvoid    []string
}

var alcoholSideEffects = []string{
	"Breathing stops or slows dangerously", "Unconsciousness", "Blue lips/fingernails", "Coma", "Death",
}

var alcoholAvoid = []string{
	"Any alcoholic beverages", "Cough medicine with alcohol", "Mouthwash with alcohol",
	"Cooking wine", "Vanilla extract",
}

func describeAlcohol(_, other string) (string, string) {
	return fmt.Sprintf("CRITICAL: Alcohol combined with %s can cause life-threatening respiratory depression and death.", other),
		fmt.Sprintf("Alcohol + %s can stop your breathing and cause death", other)
}

var defaultRules = []rule{
	{
		x: alcohol, y: benzodiazepine, severity: entities.SeveritySevere,
		describe:       describeAlcohol,
		recommendation: "NEVER combine these. This combination can be FATAL. Seek immediate medical attention if both have been consumed.",
		sideEffects:    alcoholSideEffects,
		whatToAvoid:    alcoholAvoid,
	},
	{
		x: alcohol, y: opioid, severity: entities.SeveritySevere,
		describe:       describeAlcohol,
		recommendation: "NEVER combine these. This combination can be FATAL. Seek immediate medical attention if both have been consumed.",
		sideEffects:    alcoholSideEffects,
		whatToAvoid:    alcoholAvoid,
	},
	{
		x: alcohol, y: sedative, severity: entities.SeveritySevere,
		describe:       describeAlcohol,
		recommendation: "NEVER combine these. This combination can be FATAL. Seek immediate medical attention if both have been consumed.",
		sideEffects:    alcoholSideEffects,
		whatToAvoid:    alcoholAvoid,
	},
	{
		x: maoi, y: ssri, severity: entities.SeveritySevere,
		describe: func(_, _ string) (string, string) {
			return "CRITICAL: Combining MAOI and SSRI antidepressants can cause fatal serotonin syndrome.",
				"These antidepressants together can cause deadly brain chemical poisoning"
		},
		recommendation: "NEVER combine these medications. Wait 2-5 weeks between switching. Seek emergency care if both taken.",
		sideEffects:    []string{"High fever (104°F+)", "Severe confusion", "Rapid heartbeat", "Muscle rigidity", "Seizures", "Coma", "Death"},
		whatToAvoid:    []string{"Taking both medications ever", "Switching without proper washout period", "St. John's Wort", "Tryptophan supplements"},
	},
	{
		x: anticoagulant, y: nsaid, severity: entities.SeveritySevere,
		describe: func(thinner, painkiller string) (string, string) {
			return fmt.Sprintf("CRITICAL: %s with %s dramatically increases bleeding risk and can cause life-threatening hemorrhage.", thinner, painkiller),
				"Blood thinner + pain medication can cause dangerous bleeding"
		},
		recommendation: "AVOID this combination. Consult doctor immediately. Monitor INR closely if must use together.",
		sideEffects:    []string{"Uncontrolled bleeding", "Internal bleeding", "Blood in urine/stool", "Severe bruising", "Brain bleeding", "Death from blood loss"},
		whatToAvoid:    []string{"Taking together without medical supervision", "All NSAIDs", "Any activities that could cause injury", "Dental procedures", "Surgery"},
	},
	{
		x: opioid, y: benzodiazepine, severity: entities.SeveritySevere,
		describe: func(_, _ string) (string, string) {
			return "CRITICAL: Combining opioid pain medication with benzodiazepine anxiety medication can cause fatal respiratory depression.",
				"Pain medication + anxiety medication can stop your breathing"
		},
		recommendation: "EXTREMELY DANGEROUS. Only use together under strict medical supervision.",
		sideEffects:    []string{"Breathing stops or becomes dangerously slow", "Extreme sedation", "Blue lips/skin", "Unconsciousness", "Death"},
		whatToAvoid:    []string{"Taking both without medical supervision", "Alcohol consumption", "Driving or operating machinery", "Being alone"},
	},
	{
		x: statin, y: grapefruit, severity: entities.SeverityModerate,
		describe: func(statinDrug, _ string) (string, string) {
			return fmt.Sprintf("Grapefruit significantly increases %s levels in blood, raising risk of serious muscle damage.", statinDrug),
				"Grapefruit makes cholesterol medication dangerously strong"
		},
		recommendation: "Completely avoid grapefruit while taking cholesterol medication. Risk of rhabdomyolysis.",
		sideEffects:    []string{"Severe muscle pain", "Muscle weakness", "Dark brown urine", "Kidney damage", "Liver problems"},
		whatToAvoid:    []string{"Fresh grapefruit", "Grapefruit juice", "Grapefruit supplements", "Pomelo fruit", "Grapefruit-flavored items"},
	},
}

// Detector applies the category rules in order. It holds no mutable state.
type Detector struct {
	rules []rule
}

// New returns a detector with the built-in rule table.
func New() *Detector {
	return &Detector{rules: defaultRules}
}

// Detect returns the first rule firing for the pair as a complete
// interaction with drug1/drug2 in argument order.
func (d *Detector) Detect(drugA, drugB string) (entities.Interaction, bool) {
	na, nb := normalizer.Normalize(drugA), normalizer.Normalize(drugB)
	if na == "" || nb == "" {
		return entities.Interaction{}, false
	}
	displayA, displayB := strings.TrimSpace(drugA), strings.TrimSpace(drugB)

	for _, r := range d.rules {
		var xDrug, yDrug string
		switch {
		case r.x.has(na) && r.y.has(nb):
			xDrug, yDrug = displayA, displayB
		case r.x.has(nb) && r.y.has(na):
			xDrug, yDrug = displayB, displayA
		default:
			continue
		}

		description, summary := r.describe(xDrug, yDrug)
		return entities.Interaction{
			Drug1:          drugA,
			Drug2:          drugB,
			Severity:       r.severity,
			Description:    description,
			Recommendation: r.recommendation,
			Source:         entities.SourcePattern,
			SimpleSummary:  summary,
			SideEffects:    slices.Clone(r.sideEffects),
			WhatToAvoid:    slices.Clone(r.whatToAvoid),
		}, true
	}

	return entities.Interaction{}, false
}

// Categories lists the category names a drug falls in, for diagnostics.
func (d *Detector) Categories(drug string) []string {
	n := normalizer.Normalize(drug)
	var names []string
	seen := make(map[string]bool)
	for _, r := range d.rules {
		for _, c := range []category{r.x, r.y} {
			if !seen[c.name] && c.has(n) {
				seen[c.name] = true
				names = append(names, c.name)
			}
		}
	}
	return names
}
