package dataset

import "github.com/giygas/interactions-api/entities"

// defaultClasses is the drug-class rule table. Classes without rules
// only exist as targets of other classes' rules.
var defaultClasses = []entities.DrugClass{
	{
		Name:    "Anticoagulants",
		Members: []string{"warfarin", "coumadin", "jantoven", "heparin", "enoxaparin", "lovenox", "rivaroxaban", "xarelto", "apixaban", "eliquis", "dabigatran", "pradaxa"},
		Rules: []entities.ClassRule{
			{WithClass: "NSAIDs", Severity: entities.SeveritySevere,
				Description:    "Increased risk of bleeding due to combined anticoagulant and antiplatelet effects.",
				Recommendation: "AVOID combination. If necessary, use with extreme caution and frequent monitoring."},
			{WithClass: "Antiplatelets", Severity: entities.SeveritySevere,
				Description:    "Extremely high risk of bleeding when combined.",
				Recommendation: "AVOID combination unless specifically prescribed by cardiologist with close monitoring."},
			{WithClass: "Antibiotics", Severity: entities.SeverityModerate,
				Description:    "Some antibiotics can increase anticoagulant effects.",
				Recommendation: "Monitor INR closely when starting or stopping antibiotics."},
		},
	},
	{
		Name:    "NSAIDs",
		Members: []string{"ibuprofen", "advil", "motrin", "naproxen", "aleve", "diclofenac", "voltaren", "celecoxib", "celebrex", "meloxicam", "indomethacin", "aspirin"},
		Rules: []entities.ClassRule{
			{WithClass: "ACE Inhibitors", Severity: entities.SeverityModerate,
				Description:    "NSAIDs can reduce the effectiveness of ACE inhibitors and increase kidney damage risk.",
				Recommendation: "Monitor blood pressure and kidney function. Consider alternative pain relief."},
			{WithClass: "Diuretics", Severity: entities.SeverityModerate,
				Description:    "Increased risk of kidney damage and reduced diuretic effectiveness.",
				Recommendation: "Monitor kidney function and blood pressure closely."},
			{WithClass: "Lithium", Severity: entities.SeveritySevere,
				Description:    "NSAIDs can increase lithium levels leading to toxicity.",
				Recommendation: "Monitor lithium levels closely. Consider alternative pain relief."},
		},
	},
	{
		Name:    "Benzodiazepines",
		Members: []string{"alprazolam", "xanax", "lorazepam", "ativan", "diazepam", "valium", "clonazepam", "klonopin", "temazepam", "midazolam"},
		Rules: []entities.ClassRule{
			{WithClass: "Alcohol", Severity: entities.SeveritySevere,
				Description:    "Dangerous respiratory depression, sedation, and risk of coma or death.",
				Recommendation: "NEVER combine with alcohol. This combination can be fatal."},
			{WithClass: "Opioids", Severity: entities.SeveritySevere,
				Description:    "Extremely high risk of respiratory depression and death.",
				Recommendation: "AVOID combination. If medically necessary, use lowest doses with intensive monitoring."},
			{WithClass: "Sedatives", Severity: entities.SeveritySevere,
				Description:    "Additive sedative effects leading to dangerous level of sedation.",
				Recommendation: "AVOID combination unless specifically prescribed with careful monitoring."},
		},
	},
	{
		Name:    "SSRIs",
		Members: []string{"fluoxetine", "prozac", "sertraline", "zoloft", "paroxetine", "paxil", "citalopram", "celexa", "escitalopram", "lexapro", "fluvoxamine"},
		Rules: []entities.ClassRule{
			{WithClass: "MAOIs", Severity: entities.SeveritySevere,
				Description:    "Risk of serotonin syndrome, which can be fatal.",
				Recommendation: "NEVER combine. Wait 2-5 weeks between switching medications."},
			{WithClass: "Tramadol", Severity: entities.SeverityModerate,
				Description:    "Increased risk of serotonin syndrome and seizures.",
				Recommendation: "Use with caution. Monitor for serotonin syndrome symptoms."},
			{WithClass: "Triptans", Severity: entities.SeverityModerate,
				Description:    "Increased risk of serotonin syndrome.",
				Recommendation: "Monitor for serotonin syndrome symptoms. Use lowest effective doses."},
		},
	},
	{
		Name:    "ACE Inhibitors",
		Members: []string{"lisinopril", "prinivil", "zestril", "enalapril", "vasotec", "captopril", "capoten", "ramipril", "altace"},
		Rules: []entities.ClassRule{
			{WithClass: "Potassium Supplements", Severity: entities.SeverityModerate,
				Description:    "Risk of hyperkalemia (high potassium levels).",
				Recommendation: "Monitor potassium levels regularly. Avoid potassium supplements unless prescribed."},
			{WithClass: "Diuretics", Severity: entities.SeverityModerate,
				Description:    "Risk of low blood pressure, especially when starting treatment.",
				Recommendation: "Start with low doses and monitor blood pressure closely."},
		},
	},
	{
		Name:    "Statins",
		Members: []string{"atorvastatin", "lipitor", "simvastatin", "zocor", "rosuvastatin", "crestor", "pravastatin", "pravachol", "lovastatin"},
		Rules: []entities.ClassRule{
			{WithClass: "Grapefruit", Severity: entities.SeverityModerate,
				Description:    "Grapefruit increases statin levels, risk of muscle damage and liver toxicity.",
				Recommendation: "Avoid grapefruit and grapefruit juice completely while taking statins."},
			{WithClass: "Fibrates", Severity: entities.SeverityModerate,
				Description:    "Increased risk of muscle damage (rhabdomyolysis).",
				Recommendation: "Use combination only if benefits outweigh risks. Monitor for muscle pain."},
		},
	},
	{
		Name:    "Opioids",
		Members: []string{"morphine", "oxycodone", "oxycontin", "percocet", "hydrocodone", "vicodin", "norco", "codeine", "tramadol", "fentanyl", "hydromorphone"},
		Rules: []entities.ClassRule{
			{WithClass: "Alcohol", Severity: entities.SeveritySevere,
				Description:    "Dangerous respiratory depression and risk of death.",
				Recommendation: "NEVER combine with alcohol. This combination can be fatal."},
			{WithClass: "Sedatives", Severity: entities.SeveritySevere,
				Description:    "Additive respiratory depression effects.",
				Recommendation: "AVOID combination unless medically necessary with intensive monitoring."},
		},
	},
	{
		Name:    "MAOIs",
		Members: []string{"phenelzine", "nardil", "tranylcypromine", "parnate", "isocarboxazid", "marplan", "selegiline", "emsam"},
		Rules: []entities.ClassRule{
			{WithClass: "Tyramine Foods", Severity: entities.SeveritySevere,
				Description:    "Risk of hypertensive crisis with aged cheeses, wines, cured meats.",
				Recommendation: "Strict dietary restrictions required. Avoid all tyramine-rich foods."},
			{WithClass: "Decongestants", Severity: entities.SeveritySevere,
				Description:    "Risk of severe hypertension and stroke.",
				Recommendation: "AVOID all decongestants including over-the-counter medications."},
		},
	},
	{
		Name:    "Diuretics",
		Members: []string{"furosemide", "lasix", "hydrochlorothiazide", "hctz", "spironolactone", "aldactone"},
		Rules: []entities.ClassRule{
			{WithClass: "Lithium", Severity: entities.SeverityModerate,
				Description:    "Diuretics can increase lithium levels leading to toxicity.",
				Recommendation: "Monitor lithium levels closely when starting or changing diuretic dose."},
		},
	},
	{Name: "Alcohol", Members: []string{"alcohol", "ethanol", "beer", "wine", "liquor", "vodka", "whiskey"}},
	{Name: "Antiplatelets", Members: []string{"clopidogrel", "plavix", "aspirin"}},
	{Name: "Antibiotics", Members: []string{"amoxicillin", "azithromycin", "ciprofloxacin", "levofloxacin", "doxycycline", "clarithromycin", "erythromycin", "metronidazole"}},
	{Name: "Lithium", Members: []string{"lithium", "lithobid", "eskalith"}},
	{Name: "Sedatives", Members: []string{"zolpidem", "ambien", "eszopiclone", "lunesta", "zaleplon", "sonata", "diphenhydramine"}},
	{Name: "Tramadol", Members: []string{"tramadol", "ultram", "ultracet"}},
	{Name: "Triptans", Members: []string{"sumatriptan", "imitrex", "rizatriptan", "maxalt"}},
	{Name: "Potassium Supplements", Members: []string{"potassium", "potassium chloride", "k-dur"}},
	{Name: "Grapefruit", Members: []string{"grapefruit", "grapefruit juice", "pomelo"}},
	{Name: "Fibrates", Members: []string{"gemfibrozil", "lopid", "fenofibrate", "tricor"}},
	{Name: "Tyramine Foods", Members: []string{"aged cheese", "cured meat", "soy sauce", "sauerkraut", "tyramine"}},
	{Name: "Decongestants", Members: []string{"pseudoephedrine", "sudafed", "phenylephrine"}},
}
