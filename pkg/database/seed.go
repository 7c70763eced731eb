package database

import (
	"encoding/json"
	"log"

	"biocheck_backend/internal/model"

	"gorm.io/gorm"
)

// seedCatalog inserts a starter question catalog when the table is empty so
// a fresh install is immediately usable. The catalog service validates the
// same rows again at load time.
func seedCatalog(db *gorm.DB) error {
	var count int64
	db.Model(&model.QuestionDefinition{}).Count(&count)
	if count > 0 {
		return nil
	}

	for i := range defaultQuestions {
		if err := db.Create(&defaultQuestions[i]).Error; err != nil {
			return err
		}
	}
	for i := range defaultTranslations {
		if err := db.Create(&defaultTranslations[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d catalog questions", len(defaultQuestions))
	return nil
}

func raw(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

var defaultQuestions = []model.QuestionDefinition{
	// Focus area 1: purchase & transport (external)
	{
		QID: "pf_herd_composition", FocusArea: 1, Position: 1, Number: "1.1",
		Type: "multiple_choice", ScoringClass: "demographic",
		Text:    "Which animal categories are present on your farm?",
		Options: raw(`[{"value":"breeding_sows","label":"Breeding stock","score":0},{"value":"young_stock","label":"Young stock","score":0},{"value":"finishers","label":"Finishing stock","score":0}]`),
		Enabled: true,
	},
	{
		QID: "ext_buys_animals", FocusArea: 1, Position: 2, Number: "1.2",
		Type: "single_choice", ScoringClass: "normal",
		Text:    "Do you purchase live animals from other farms?",
		Options: raw(`[{"value":"yes","label":"Yes","score":40},{"value":"no","label":"No","score":100}]`),
		Skips:   raw(`[{"trigger":"equals","values":["no"],"farmTargets":{"breeding":"ext_semen_source"},"default":"ext_transport_vehicle"}]`),
		Enabled: true,
	},
	{
		QID: "ext_purchase_quarantine", FocusArea: 1, Position: 3, Number: "1.3",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Are purchased animals quarantined before joining the herd?",
		Options:  raw(`[{"value":"yes","label":"Yes, always","score":100},{"value":"sometimes","label":"Sometimes","score":40},{"value":"no","label":"No","score":0}]`),
		RiskMeta: raw(`{"description":"Purchased animals enter the herd without quarantine","recommendation":"Set up a separate quarantine stable and keep new animals isolated for at least four weeks","priority":"high","diseases":["ASF","PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "ext_quarantine_days", FocusArea: 1, Position: 4, Number: "1.4",
		Type: "numeric", ScoringClass: "normal",
		Text:         "How many days do purchased animals stay in quarantine?",
		Conditions:   raw(`[{"ref":"ext_purchase_quarantine","op":"==","value":"yes"}]`),
		NumericRules: raw(`[{"op":">=","threshold":28,"score":100},{"op":"between","min":14,"max":27,"score":60},{"op":"<","threshold":14,"score":20}]`),
		RiskMeta:     raw(`{"description":"Quarantine period too short to cover common incubation times","recommendation":"Extend the quarantine period to at least 28 days","priority":"medium","diseases":["PRRS"]}`),
		Enabled:      true,
	},
	{
		QID: "ext_semen_source", FocusArea: 1, Position: 5, Number: "1.5",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Where does semen for artificial insemination come from?",
		Options:  raw(`[{"value":"certified","label":"Certified AI station","score":100},{"value":"own_boar","label":"Own boar","score":60},{"value":"neighbour","label":"Neighbouring farm","score":20}]`),
		RiskMeta: raw(`{"description":"Semen sourced outside certified channels","recommendation":"Source semen exclusively from certified AI stations with health monitoring","priority":"medium","diseases":["PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "ext_transport_vehicle", FocusArea: 1, Position: 6, Number: "1.6",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Which vehicle is used for animal transport?",
		Options:  raw(`[{"value":"own","label":"Own vehicle only","score":100},{"value":"shared_cleaned","label":"Shared, cleaned before arrival","score":60},{"value":"shared","label":"Shared, cleaning unknown","score":0}]`),
		RiskMeta: raw(`{"description":"Animal transport relies on vehicles of unknown hygiene status","recommendation":"Demand a cleaning and disinfection certificate before any vehicle enters the premises","priority":"high","diseases":["ASF","FMD"]}`),
		Enabled:  true,
	},
	{
		QID: "ext_transport_cleaning", FocusArea: 1, Position: 7, Number: "1.7",
		Type: "single_choice", ScoringClass: "normal",
		Text:      "Is the loading area cleaned and disinfected after every transport?",
		Options:   raw(`[{"value":"always","label":"Always","score":100},{"value":"sometimes","label":"Sometimes","score":50},{"value":"never","label":"Never","score":0}]`),
		Condition: "ext_transport_vehicle != 'own'",
		RiskMeta:  raw(`{"description":"Loading area not routinely disinfected after transports","recommendation":"Clean and disinfect the loading area directly after every transport movement","priority":"critical","diseases":["ASF","FMD"]}`),
		Enabled:   true,
	},

	// Focus area 2: visitors, vehicles & vermin (external)
	{
		QID: "vis_visitor_log", FocusArea: 2, Position: 1, Number: "2.1",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Is every visitor registered in a visitor log?",
		Options:  raw(`[{"value":"yes","label":"Yes","score":100},{"value":"no","label":"No","score":0}]`),
		RiskMeta: raw(`{"description":"Visitor movements cannot be traced","recommendation":"Keep a mandatory visitor log including date, origin and last animal contact","priority":"medium","diseases":["PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "vis_hygiene_lock", FocusArea: 2, Position: 2, Number: "2.2",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Do visitors pass a hygiene lock with farm clothing and boots?",
		Options:  raw(`[{"value":"full","label":"Shower-in with full change","score":100},{"value":"clothing","label":"Farm clothing and boots","score":70},{"value":"none","label":"No requirements","score":0}]`),
		RiskMeta: raw(`{"description":"Visitors enter animal houses in their own clothing","recommendation":"Install a hygiene lock and provide farm-owned clothing and footwear for every visitor","priority":"high","diseases":["ASF","PRRS","Salmonella"]}`),
		Enabled:  true,
	},
	{
		QID: "vis_boot_dip", FocusArea: 2, Position: 3, Number: "2.3",
		Type: "single_choice", ScoringClass: "normal",
		Text:       "Are disinfection boot dips placed at every stable entrance?",
		Options:    raw(`[{"value":"yes_fresh","label":"Yes, refreshed regularly","score":100},{"value":"yes_stale","label":"Yes, rarely refreshed","score":40},{"value":"no","label":"No","score":0}]`),
		Conditions: raw(`[{"ref":"vis_hygiene_lock","op":"!=","value":"none"}]`),
		RiskMeta:   raw(`{"description":"Boot dips missing or not maintained","recommendation":"Place boot dips at every entrance and renew the disinfectant at least twice a week","priority":"medium","diseases":["Salmonella"]}`),
		Enabled:    true,
	},
	{
		QID: "vis_wild_boar_contact", FocusArea: 2, Position: 4, Number: "2.4",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Can wild boar come into contact with your animals or feed?",
		Options:  raw(`[{"value":"no","label":"No, fully fenced","score":100},{"value":"unknown","label":"Unknown","score":40},{"value":"yes","label":"Yes","score":0}]`),
		RiskMeta: raw(`{"description":"Possible direct or indirect wild boar contact","recommendation":"Install double fencing around outdoor areas and secure feed storage against wildlife","priority":"critical","diseases":["ASF"]}`),
		Enabled:  true,
	},
	{
		QID: "vis_rodent_program", FocusArea: 2, Position: 5, Number: "2.5",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Is there a structured rodent control program?",
		Options:  raw(`[{"value":"professional","label":"Professional contractor","score":100},{"value":"own","label":"Own bait plan","score":60},{"value":"none","label":"None","score":0}]`),
		RiskMeta: raw(`{"description":"No structured rodent control","recommendation":"Contract a professional pest controller with a documented bait plan","priority":"medium","diseases":["Salmonella","Leptospirosis"]}`),
		Enabled:  true,
	},

	// Focus area 3: feed, water & hygiene (internal)
	{
		QID: "hyg_allin_allout", FocusArea: 3, Position: 1, Number: "3.1",
		Type: "single_choice", ScoringClass: "normal",
		Text:    "Do you work all-in/all-out per compartment?",
		Options: raw(`[{"value":"yes","label":"Yes","score":100},{"value":"no","label":"No, continuous flow","score":0}]`),
		Skips:   raw(`[{"trigger":"equals","values":["no"],"target":"hyg_water_source"}]`),
		RiskMeta: raw(`{"description":"Continuous animal flow prevents effective cleaning cycles","recommendation":"Reorganise compartments so that groups move all-in/all-out","priority":"high","diseases":["PRRS","Salmonella"]}`),
		Enabled: true,
	},
	{
		QID: "hyg_downtime_days", FocusArea: 3, Position: 2, Number: "3.2",
		Type: "numeric", ScoringClass: "normal",
		Text:         "How many days does a compartment stay empty after cleaning?",
		NumericRules: raw(`[{"op":">=","threshold":5,"score":100},{"op":"between","min":2,"max":4,"score":60},{"op":"<","threshold":2,"score":0}]`),
		RiskMeta:     raw(`{"description":"Sanitary downtime too short for drying and disinfection","recommendation":"Plan at least five empty days between production rounds","priority":"medium","diseases":["Salmonella"]}`),
		Enabled:      true,
	},
	{
		QID: "hyg_disinfect_between", FocusArea: 3, Position: 3, Number: "3.3",
		Type: "single_choice", ScoringClass: "normal",
		Text:    "Is the compartment disinfected between production rounds?",
		Options: raw(`[{"value":"always","label":"Always","score":100},{"value":"sometimes","label":"Sometimes","score":50},{"value":"never","label":"Never","score":0}]`),
		Enabled: true,
	},
	{
		QID: "hyg_water_source", FocusArea: 3, Position: 4, Number: "3.4",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "What is the drinking water source?",
		Options:  raw(`[{"value":"mains","label":"Mains water","score":100},{"value":"well_tested","label":"Well, tested yearly","score":80},{"value":"surface","label":"Surface water","score":20}]`),
		RiskMeta: raw(`{"description":"Drinking water of uncontrolled quality","recommendation":"Switch to mains water or test well water at least once a year","priority":"medium","diseases":["Leptospirosis","Salmonella"]}`),
		Enabled:  true,
	},
	{
		QID: "hyg_cleaning_matrix", FocusArea: 3, Position: 5, Number: "3.5",
		Type: "matrix", ScoringClass: "normal",
		Text:     "How often are the following areas cleaned and disinfected?",
		Rows:     raw(`[{"key":"pens","label":"Animal pens"},{"key":"corridors","label":"Corridors"},{"key":"equipment","label":"Movable equipment"}]`),
		Columns:  raw(`[{"value":"after_each_round","label":"After every round","score":100},{"value":"monthly","label":"Monthly","score":50},{"value":"rarely","label":"Rarely","score":0}]`),
		RiskMeta: raw(`{"description":"Cleaning frequency insufficient in parts of the stable","recommendation":"Extend the cleaning and disinfection protocol to all compartments and equipment","priority":"high","diseases":["Salmonella","PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "hyg_feed_storage", FocusArea: 3, Position: 6, Number: "3.6",
		Type: "single_choice", ScoringClass: "normal",
		Text:    "Is feed stored so that birds and rodents cannot reach it?",
		Options: raw(`[{"value":"closed","label":"Closed silo/containers","score":100},{"value":"partially","label":"Partially protected","score":50},{"value":"open","label":"Open storage","score":0}]`),
		Enabled: true,
	},

	// Focus area 4: herd health & young stock (internal)
	{
		QID: "herd_vet_plan", FocusArea: 4, Position: 1, Number: "4.1",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Is there a written herd health plan with your veterinarian?",
		Options:  raw(`[{"value":"yes","label":"Yes, reviewed yearly","score":100},{"value":"outdated","label":"Yes, but outdated","score":50},{"value":"no","label":"No","score":0}]`),
		RiskMeta: raw(`{"description":"No current herd health plan","recommendation":"Draw up a herd health plan with your veterinarian and review it every year","priority":"medium","diseases":["PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "herd_sick_pen", FocusArea: 4, Position: 2, Number: "4.2",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "Are sick animals separated in a dedicated sick pen?",
		Options:  raw(`[{"value":"yes","label":"Yes, separate air space","score":100},{"value":"same_room","label":"Yes, within the group room","score":50},{"value":"no","label":"No","score":0}]`),
		RiskMeta: raw(`{"description":"Sick animals stay in contact with the healthy group","recommendation":"Create a sick pen with its own air space and dedicated tools","priority":"high","diseases":["PRRS","Salmonella"]}`),
		Enabled:  true,
	},
	{
		QID: "herd_needle_reuse", FocusArea: 4, Position: 3, Number: "4.3",
		Type: "single_choice", ScoringClass: "normal",
		Text:     "How often are injection needles changed?",
		Options:  raw(`[{"value":"per_animal","label":"Per animal","score":100},{"value":"per_litter","label":"Per litter/group","score":60},{"value":"multi","label":"When blunt","score":0}]`),
		RiskMeta: raw(`{"description":"Needle reuse across groups spreads blood-borne pathogens","recommendation":"Change needles at least per litter, preferably per animal","priority":"medium","diseases":["PRRS"]}`),
		Enabled:  true,
	},
	{
		QID: "herd_young_protocol", FocusArea: 4, Position: 4, Number: "4.4",
		Type: "single_choice", ScoringClass: "normal",
		Text:       "Is there a written care protocol for newborn animals?",
		Options:    raw(`[{"value":"yes","label":"Yes","score":100},{"value":"no","label":"No","score":0}]`),
		Conditions: raw(`[{"ref":"herd_vet_plan","op":"!=","value":"no"}]`),
		Enabled:    true,
	},
	{
		QID: "herd_mortality_rate", FocusArea: 4, Position: 5, Number: "4.5",
		Type: "numeric", ScoringClass: "normal",
		Text:         "What was last year's mortality rate (%) in the herd?",
		NumericRules: raw(`[{"op":"<=","threshold":2,"score":100},{"op":"<=","threshold":5,"score":60},{"op":">=","threshold":5,"score":20}]`),
		RiskMeta:     raw(`{"description":"Elevated mortality indicates unresolved health problems","recommendation":"Investigate mortality causes with your veterinarian and set reduction targets","priority":"high","diseases":["PRRS","Salmonella"]}`),
		Enabled:      true,
	},
}

var defaultTranslations = []model.QuestionTranslation{
	{
		QID: "pf_herd_composition", Language: "nl",
		Text:         "Welke diercategorieën zijn aanwezig op uw bedrijf?",
		OptionLabels: raw(`{"breeding_sows":"Fokdieren","young_stock":"Jongvee","finishers":"Vleesdieren"}`),
	},
	{
		QID: "ext_buys_animals", Language: "nl",
		Text:         "Koopt u levende dieren aan van andere bedrijven?",
		OptionLabels: raw(`{"yes":"Ja","no":"Nee"}`),
	},
}
