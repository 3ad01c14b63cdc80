package scholarship

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedArtifact(t *testing.T) {
	a, err := EmbeddedArtifact()

	require.NoError(t, err)
	assert.Equal(t, "Scholarship_Recommender@2", a.ID())
	assert.ElementsMatch(t, InputFields(), a.Inputs)
	assert.Equal(t, OutputLabel, a.Output)
}

func TestArtifactClassifier_BestExemplarWins(t *testing.T) {
	a, err := EmbeddedArtifact()
	require.NoError(t, err)

	res, err := NewPredictor(NewArtifactClassifier(a)).Predict(context.Background(), validQuery())

	require.NoError(t, err)
	assert.Equal(t, "STEM Excellence Award", res.Label)
	assert.Equal(t, "Scholarship_Recommender@2", res.Model)
}

func TestArtifactClassifier_FieldOfStudyIgnoresCase(t *testing.T) {
	a, err := EmbeddedArtifact()
	require.NoError(t, err)
	q := Query{
		ClassYear:             "Sophomore",
		FieldOfStudy:          " computer science ",
		GPARange:              "3.5-4.0",
		IncomeLevel:           "$100,000+",
		Extracurricular:       "STEM Clubs",
		CommunityServiceHours: "<10 hours",
		UnderrepresentedGroup: "No",
		FirstGenStudent:       "No",
	}

	res, err := NewArtifactClassifier(a).Classify(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, "Future Innovators in Technology Scholarship", res.Label)
}

func TestArtifactClassifier_BelowMinScore(t *testing.T) {
	a, err := EmbeddedArtifact()
	require.NoError(t, err)
	q := Query{
		ClassYear:             "Sophomore",
		FieldOfStudy:          "History",
		GPARange:              "0.0-1.0",
		IncomeLevel:           "$100,000+",
		Extracurricular:       "None",
		CommunityServiceHours: "<10 hours",
		UnderrepresentedGroup: "No",
		FirstGenStudent:       "No",
	}

	_, err = NewPredictor(NewArtifactClassifier(a)).Predict(context.Background(), q)

	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PredictionNoLabel, perr.Kind)
}

func TestArtifactClassifier_TieGoesToEarlierExemplar(t *testing.T) {
	c := NewArtifactClassifier(&Artifact{
		Name: "tie", Version: 1, MinScore: 1,
		Exemplars: []Exemplar{
			{Features: map[string]string{FieldClassYear: "Senior"}, Label: "first"},
			{Features: map[string]string{FieldGPARange: "3.5-4.0"}, Label: "second"},
		},
	})

	res, err := c.Classify(context.Background(), validQuery())

	require.NoError(t, err)
	assert.Equal(t, "first", res.Label)
}

func TestParseArtifact_RejectsSchemaMismatch(t *testing.T) {
	tests := map[string]string{
		"bad json":        `{`,
		"unknown field":   `{"name":"m","version":1,"inputs":[],"output":"x","exemplars":[],"extra":1}`,
		"no version":      `{"name":"m","inputs":[],"output":"Recommended_Scholarships","exemplars":[]}`,
		"missing inputs":  `{"name":"m","version":1,"inputs":["Class_Year"],"output":"Recommended_Scholarships","exemplars":[{"label":"a"}]}`,
		"wrong output":    `{"name":"m","version":1,"inputs":["Class_Year","Field_of_Study","GPA_Range","Income_Level","Extracurricular_Activities","Community_Service_Hours","Underrepresented_Group","First_Generation_College_Student"],"output":"Label","exemplars":[{"label":"a"}]}`,
		"no exemplars":    `{"name":"m","version":1,"inputs":["Class_Year","Field_of_Study","GPA_Range","Income_Level","Extracurricular_Activities","Community_Service_Hours","Underrepresented_Group","First_Generation_College_Student"],"output":"Recommended_Scholarships","exemplars":[]}`,
		"unknown feature": `{"name":"m","version":1,"inputs":["Class_Year","Field_of_Study","GPA_Range","Income_Level","Extracurricular_Activities","Community_Service_Hours","Underrepresented_Group","First_Generation_College_Student"],"output":"Recommended_Scholarships","exemplars":[{"features":{"Age":"19"},"label":"a"}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadClassifier_FromFile(t *testing.T) {
	data, err := embeddedModel.ReadFile(embeddedModelPath)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadClassifier(path)

	require.NoError(t, err)
	require.IsType(t, &ArtifactClassifier{}, c)
}

func TestLoadClassifier_MissingFileIsUnavailable(t *testing.T) {
	c, err := LoadClassifier(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	_, predictErr := NewPredictor(c).Predict(context.Background(), validQuery())
	var perr *PredictionError
	require.ErrorAs(t, predictErr, &perr)
	assert.Equal(t, PredictionUnavailable, perr.Kind)
}
