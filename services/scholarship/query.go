// Package scholarship is the boundary to the scholarship classifier: the
// fixed eight-field query schema, its enumerations, validation, and the
// classifier variants that can sit behind it.
package scholarship

// Input and output names of the classifier schema.
const (
	FieldClassYear             = "Class_Year"
	FieldFieldOfStudy          = "Field_of_Study"
	FieldGPARange              = "GPA_Range"
	FieldIncomeLevel           = "Income_Level"
	FieldExtracurricular       = "Extracurricular_Activities"
	FieldCommunityServiceHours = "Community_Service_Hours"
	FieldUnderrepresented      = "Underrepresented_Group"
	FieldFirstGen              = "First_Generation_College_Student"

	OutputLabel = "Recommended_Scholarships"
)

// InputFields lists the eight schema inputs in form order.
func InputFields() []string {
	return []string{
		FieldClassYear, FieldFieldOfStudy, FieldGPARange, FieldIncomeLevel,
		FieldExtracurricular, FieldCommunityServiceHours, FieldUnderrepresented, FieldFirstGen,
	}
}

// Query is one classifier input. Every field except FieldOfStudy is drawn
// from a fixed enumeration.
type Query struct {
	ClassYear             string `json:"class_year"`
	FieldOfStudy          string `json:"field_of_study"`
	GPARange              string `json:"gpa_range"`
	IncomeLevel           string `json:"income_level"`
	Extracurricular       string `json:"extracurricular"`
	CommunityServiceHours string `json:"community_service_hours"`
	UnderrepresentedGroup string `json:"underrepresented_group"`
	FirstGenStudent       string `json:"first_gen_student"`
}

// Features returns the query keyed by schema input name.
func (q Query) Features() map[string]string {
	return map[string]string{
		FieldClassYear:             q.ClassYear,
		FieldFieldOfStudy:          q.FieldOfStudy,
		FieldGPARange:              q.GPARange,
		FieldIncomeLevel:           q.IncomeLevel,
		FieldExtracurricular:       q.Extracurricular,
		FieldCommunityServiceHours: q.CommunityServiceHours,
		FieldUnderrepresented:      q.UnderrepresentedGroup,
		FieldFirstGen:              q.FirstGenStudent,
	}
}

// Result is a recommended scholarship label. Model names the classifier
// that produced it; there is no confidence score.
type Result struct {
	Label string `json:"label"`
	Model string `json:"model,omitempty"`
}

var (
	ClassYears = []string{"Freshman", "Sophomore", "Junior", "Senior"}

	GPARanges = []string{
		"0.0-1.0", "1.0-2.0", "2.0-2.5", "2.5-3.0",
		"3.0-3.5", "3.5-4.0",
	}

	IncomeLevels = []string{
		"<$20,000", "$20,000-$40,000", "$40,000-$60,000",
		"$60,000-$80,000", "$80,000-$100,000", "$100,000+",
	}

	Extracurriculars = []string{
		"None", "Sports", "Music/Arts", "Volunteering",
		"STEM Clubs", "Student Government",
	}

	CommunityServiceHours = []string{
		"<10 hours", "10-50 hours", "51-100 hours",
		"101-200 hours", "200+ hours",
	}

	YesNo = []string{"Yes", "No"}
)

// MaxFieldOfStudyLength bounds the free-text field, in characters.
const MaxFieldOfStudyLength = 100

// enumerations maps each enumerated input to its allowed values.
func enumerations() map[string][]string {
	return map[string][]string{
		FieldClassYear:             ClassYears,
		FieldGPARange:              GPARanges,
		FieldIncomeLevel:           IncomeLevels,
		FieldExtracurricular:       Extracurriculars,
		FieldCommunityServiceHours: CommunityServiceHours,
		FieldUnderrepresented:      YesNo,
		FieldFirstGen:              YesNo,
	}
}

// Option describes one form picker.
type Option struct {
	Field  string   `json:"field"`
	Values []string `json:"values,omitempty"`
	Free   bool     `json:"free_text,omitempty"`
}

// Options returns the picker definitions in form order.
func Options() []Option {
	enums := enumerations()
	out := make([]Option, 0, len(InputFields()))
	for _, f := range InputFields() {
		if values, ok := enums[f]; ok {
			out = append(out, Option{Field: f, Values: append([]string(nil), values...)})
		} else {
			out = append(out, Option{Field: f, Free: true})
		}
	}
	return out
}
