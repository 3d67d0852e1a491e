package normalizer

import "github.com/giygas/interactions-api/entities"

// defaultFamilies groups generics with their brands and common spellings.
// Every variant must identify one drug on its own, so two- and three-letter
// stems are left out: they matched unrelated names ("met" in both metformin
// and metoprolol).
var defaultFamilies = []entities.AliasFamily{
	{Canonical: "warfarin", Aliases: []string{"coumadin", "jantoven", "warf", "coum"}},
	{Canonical: "aspirin", Aliases: []string{"bayer", "bufferin", "ecotrin", "acetylsalicylic acid", "aspir"}},
	{Canonical: "ibuprofen", Aliases: []string{"advil", "motrin", "nuprin", "brufen", "ibup"}},
	{Canonical: "acetaminophen", Aliases: []string{"tylenol", "paracetamol", "panadol"}},
	{Canonical: "naproxen", Aliases: []string{"aleve", "naprosyn", "anaprox"}},
	{Canonical: "alprazolam", Aliases: []string{"xanax", "niravam"}},
	{Canonical: "lorazepam", Aliases: []string{"ativan"}},
	{Canonical: "diazepam", Aliases: []string{"valium"}},
	{Canonical: "clonazepam", Aliases: []string{"klonopin", "rivotril"}},
	{Canonical: "fluoxetine", Aliases: []string{"prozac", "sarafem"}},
	{Canonical: "sertraline", Aliases: []string{"zoloft"}},
	{Canonical: "paroxetine", Aliases: []string{"paxil", "pexeva"}},
	{Canonical: "citalopram", Aliases: []string{"celexa"}},
	{Canonical: "escitalopram", Aliases: []string{"lexapro", "cipralex"}},
	{Canonical: "phenelzine", Aliases: []string{"nardil"}},
	{Canonical: "tranylcypromine", Aliases: []string{"parnate"}},
	{Canonical: "hydrocodone", Aliases: []string{"vicodin", "norco", "lortab"}},
	{Canonical: "oxycodone", Aliases: []string{"percocet", "oxycontin", "roxicodone"}},
	{Canonical: "morphine", Aliases: []string{"ms contin", "kadian"}},
	{Canonical: "tramadol", Aliases: []string{"ultram", "ultracet"}},
	{Canonical: "codeine", Aliases: []string{"tylenol #3", "tylenol 3"}},
	{Canonical: "fentanyl", Aliases: []string{"duragesic", "actiq"}},
	{Canonical: "atorvastatin", Aliases: []string{"lipitor"}},
	{Canonical: "simvastatin", Aliases: []string{"zocor"}},
	{Canonical: "rosuvastatin", Aliases: []string{"crestor"}},
	{Canonical: "pravastatin", Aliases: []string{"pravachol"}},
	{Canonical: "lisinopril", Aliases: []string{"prinivil", "zestril"}},
	{Canonical: "enalapril", Aliases: []string{"vasotec"}},
	{Canonical: "metformin", Aliases: []string{"glucophage", "fortamet"}},
	{Canonical: "omeprazole", Aliases: []string{"prilosec"}},
	{Canonical: "lansoprazole", Aliases: []string{"prevacid"}},
	{Canonical: "esomeprazole", Aliases: []string{"nexium"}},
	{Canonical: "amlodipine", Aliases: []string{"norvasc"}},
	{Canonical: "levothyroxine", Aliases: []string{"synthroid", "levoxyl"}},
	{Canonical: "prednisone", Aliases: []string{"deltasone"}},
	{Canonical: "ciprofloxacin", Aliases: []string{"cipro"}},
	{Canonical: "clopidogrel", Aliases: []string{"plavix"}},
	{Canonical: "atenolol", Aliases: []string{"tenormin"}},
	{Canonical: "metoprolol", Aliases: []string{"lopressor", "toprol"}},
	{Canonical: "digoxin", Aliases: []string{"lanoxin", "digitek"}},
	{Canonical: "quinidine", Aliases: []string{"quinaglute", "cardioquin"}},
	{Canonical: "lithium", Aliases: []string{"lithobid", "eskalith"}},
	{Canonical: "theophylline", Aliases: []string{"theo-dur", "uniphyl"}},
	{Canonical: "calcium", Aliases: []string{"calcium carbonate", "tums"}},
	{Canonical: "grapefruit", Aliases: []string{"grapefruit juice", "pomelo"}},
	{Canonical: "alcohol", Aliases: []string{"ethanol", "beer", "wine", "liquor", "vodka", "whiskey", "ethyl alcohol"}},
	{Canonical: "insulin", Aliases: []string{"humalog", "novolog", "lantus", "levemir", "humulin", "apidra"}},
	{Canonical: "phenytoin", Aliases: []string{"dilantin"}},
	{Canonical: "zolpidem", Aliases: []string{"ambien"}},
	{Canonical: "cyclobenzaprine", Aliases: []string{"flexeril"}},
	{Canonical: "azithromycin", Aliases: []string{"zithromax", "z-pack", "z-pak", "zpak"}},
	{Canonical: "iron", Aliases: []string{"ferrous sulfate", "ferrous gluconate"}},
	{Canonical: "coffee", Aliases: []string{"caffeine", "espresso", "latte", "cappuccino"}},
	{Canonical: "furosemide", Aliases: []string{"lasix"}},
	{Canonical: "spironolactone", Aliases: []string{"aldactone"}},
	{Canonical: "dairy", Aliases: []string{"dairy products", "milk", "cheese", "yogurt"}},
}
