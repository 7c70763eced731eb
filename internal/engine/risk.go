package engine

import "sort"

// Recommendation is one remediation entry derived from an at-risk answer.
type Recommendation struct {
	QuestionID  string   `json:"questionId"`
	Number      string   `json:"number"`
	Text        string   `json:"text"`
	Score       float64  `json:"score"`
	Risk        string   `json:"risk"`
	Advice      string   `json:"advice"`
	Diseases    []string `json:"diseases,omitempty"`
	Priority    Priority `json:"priority"`
}

// RiskReport groups recommendations by configured priority, each bucket
// sorted worst-first, plus the accumulated per-disease risk profile.
type RiskReport struct {
	DiseaseRisks map[string]float64 `json:"diseaseRisks"`
	Critical     []Recommendation   `json:"critical"`
	High         []Recommendation   `json:"high"`
	Medium       []Recommendation   `json:"medium"`
	Low          []Recommendation   `json:"low"`
}

// DiseasePolicy combines the severities of several at-risk questions that
// affect the same disease into one risk indicator. The combination rule is
// policy, not engine logic.
type DiseasePolicy interface {
	Name() string
	Combine(severities []float64) float64
}

// MaxSeverityPolicy rates a disease by its worst contributing gap: one
// critical hole in the fence dominates whatever else is done right.
type MaxSeverityPolicy struct{}

func (MaxSeverityPolicy) Name() string { return "max_severity" }

func (MaxSeverityPolicy) Combine(severities []float64) float64 {
	var max float64
	for _, s := range severities {
		if s > max {
			max = s
		}
	}
	return Round2(max)
}

// CountWeightedPolicy rates a disease by the mean severity plus a bump for
// each additional contributing factor, capped at 100.
type CountWeightedPolicy struct {
	// Bump added per contributing question beyond the first. Zero means a
	// plain mean.
	Bump float64
}

func (CountWeightedPolicy) Name() string { return "count_weighted" }

func (p CountWeightedPolicy) Combine(severities []float64) float64 {
	if len(severities) == 0 {
		return 0
	}
	var sum float64
	for _, s := range severities {
		sum += s
	}
	v := sum/float64(len(severities)) + p.Bump*float64(len(severities)-1)
	if v > 100 {
		v = 100
	}
	return Round2(v)
}

// placeholder markers appear in legacy catalogs where a question affects
// "everything"; they are not diseases and never enter the profile.
var placeholderDiseases = map[string]bool{
	"":        true,
	"all":     true,
	"general": true,
	"-":       true,
}

// DeriveRisk scans answered, scorable questions carrying risk metadata and
// produces the disease-risk profile plus the prioritized remediation list.
// A question is at risk when its score falls below its trigger threshold.
func DeriveRisk(visible []Question, answers map[string]Answer, policy DiseasePolicy) (*RiskReport, error) {
	if policy == nil {
		policy = MaxSeverityPolicy{}
	}

	report := &RiskReport{DiseaseRisks: map[string]float64{}}
	contributions := map[string][]float64{}

	for _, q := range visible {
		if q.Risk == nil {
			continue
		}
		score, ok, err := Score(q, answers[q.ID])
		if err != nil {
			return nil, err
		}
		if !ok || score >= q.Risk.threshold() {
			continue
		}

		rec := Recommendation{
			QuestionID: q.ID,
			Number:     q.Number,
			Text:       q.Text,
			Score:      score,
			Risk:       q.Risk.Description,
			Advice:     q.Risk.Recommendation,
			Diseases:   q.Risk.Diseases,
			Priority:   q.Risk.Priority,
		}
		switch q.Risk.Priority {
		case PriorityCritical:
			report.Critical = append(report.Critical, rec)
		case PriorityHigh:
			report.High = append(report.High, rec)
		case PriorityLow:
			report.Low = append(report.Low, rec)
		default:
			report.Medium = append(report.Medium, rec)
		}

		severity := 100 - score
		for _, d := range q.Risk.Diseases {
			if placeholderDiseases[d] {
				continue
			}
			contributions[d] = append(contributions[d], severity)
		}
	}

	for _, bucket := range [][]Recommendation{report.Critical, report.High, report.Medium, report.Low} {
		b := bucket
		sort.SliceStable(b, func(i, j int) bool { return b[i].Score < b[j].Score })
	}

	for disease, severities := range contributions {
		report.DiseaseRisks[disease] = policy.Combine(severities)
	}
	return report, nil
}
