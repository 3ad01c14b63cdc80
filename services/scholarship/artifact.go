package scholarship

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

//go:embed model/scholarship_recommender_v2.json
var embeddedModel embed.FS

const embeddedModelPath = "model/scholarship_recommender_v2.json"

// Artifact is the on-disk form of a pretrained recommender. It documents
// its input and output schema so a mismatched artifact is rejected at load
// time rather than at prediction time.
type Artifact struct {
	Name      string     `json:"name"`
	Version   int        `json:"version"`
	Inputs    []string   `json:"inputs"`
	Output    string     `json:"output"`
	MinScore  int        `json:"min_score"`
	Exemplars []Exemplar `json:"exemplars"`
}

// Exemplar is one labelled point of the model. Features may name a subset
// of the inputs.
type Exemplar struct {
	Features map[string]string `json:"features"`
	Label    string            `json:"label"`
}

// ID is the artifact name and version, e.g. "Scholarship_Recommender@2".
func (a *Artifact) ID() string {
	return fmt.Sprintf("%s@%d", a.Name, a.Version)
}

// ParseArtifact decodes and checks an artifact.
func ParseArtifact(data []byte) (*Artifact, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if a.Name == "" || a.Version <= 0 {
		return errors.New("artifact name and positive version are required")
	}
	want := InputFields()
	got := slices.Clone(a.Inputs)
	slices.Sort(want)
	slices.Sort(got)
	if !slices.Equal(want, got) {
		return fmt.Errorf("artifact %s inputs %v do not match schema %v", a.ID(), a.Inputs, InputFields())
	}
	if a.Output != OutputLabel {
		return fmt.Errorf("artifact %s output %q, want %q", a.ID(), a.Output, OutputLabel)
	}
	if len(a.Exemplars) == 0 {
		return fmt.Errorf("artifact %s has no exemplars", a.ID())
	}
	for i, e := range a.Exemplars {
		if strings.TrimSpace(e.Label) == "" {
			return fmt.Errorf("artifact %s exemplar %d has no label", a.ID(), i)
		}
		for f := range e.Features {
			if !slices.Contains(a.Inputs, f) {
				return fmt.Errorf("artifact %s exemplar %d uses unknown input %q", a.ID(), i, f)
			}
		}
	}
	return nil
}

// LoadArtifact reads an artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// EmbeddedArtifact returns the artifact compiled into the binary.
func EmbeddedArtifact() (*Artifact, error) {
	data, err := embeddedModel.ReadFile(embeddedModelPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ArtifactClassifier answers with the label of the exemplar that shares
// the most feature values with the query. Ties go to the earlier exemplar.
// Scores below the artifact's MinScore yield a no-label error.
type ArtifactClassifier struct {
	artifact *Artifact
}

// NewArtifactClassifier wraps a loaded artifact.
func NewArtifactClassifier(a *Artifact) *ArtifactClassifier {
	return &ArtifactClassifier{artifact: a}
}

// Artifact returns the loaded artifact.
func (c *ArtifactClassifier) Artifact() *Artifact {
	return c.artifact
}

func (c *ArtifactClassifier) Classify(ctx context.Context, q Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	features := q.Features()
	best, bestScore := -1, 0
	for i, e := range c.artifact.Exemplars {
		score := 0
		for f, v := range e.Features {
			if strings.EqualFold(strings.TrimSpace(features[f]), v) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < c.artifact.MinScore {
		return Result{}, ErrNoLabel(fmt.Errorf("no exemplar of %s scores at least %d", c.artifact.ID(), c.artifact.MinScore))
	}
	return Result{Label: c.artifact.Exemplars[best].Label, Model: c.artifact.ID()}, nil
}

// LoadClassifier returns the classifier for path, or for the embedded
// artifact when path is empty. A missing or malformed artifact does not
// fail start-up: the returned classifier reports the model as unavailable
// and the error is returned alongside it for logging.
func LoadClassifier(path string) (Classifier, error) {
	var (
		a   *Artifact
		err error
	)
	if path == "" {
		a, err = EmbeddedArtifact()
	} else {
		a, err = LoadArtifact(path)
	}
	if err != nil {
		return Unavailable(err), err
	}
	return NewArtifactClassifier(a), nil
}
