package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestErrorMessageProperties verifies the uniform error rendering for
// arbitrary sources and messages.
func TestErrorMessageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: every ToolError renders as "<source> error: <message>"
	properties.Property("ToolError message format is uniform", prop.ForAll(
		func(source, message string) bool {
			te := &ToolError{Kind: ExternalAPIFailure, Source: source, Message: message}
			return te.Error() == fmt.Sprintf("%s error: %s", source, message)
		},
		gen.OneConstOf("validation", "linear", "dispatch"),
		gen.AlphaString(),
	))

	// Property: a lookup miss always carries the rejected identifier
	properties.Property("NotFound message includes the identifier", prop.ForAll(
		func(id string) bool {
			return strings.Contains(NewNotFoundError("issue", id).Error(), id)
		},
		gen.Identifier(),
	))

	// Property: normalizing is idempotent
	properties.Property("AsToolError is idempotent", prop.ForAll(
		func(message string) bool {
			first := AsToolError(fmt.Errorf("%s", message))
			return AsToolError(first) == first
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestExtractEmbeddedImagesProperties verifies extraction over
// generated markdown.
func TestExtractEmbeddedImagesProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	urlGen := gen.Identifier().Map(func(s string) string {
		return "https://files.example/" + s + ".png"
	})

	// Property: a well-formed image is always found, whatever the alt
	properties.Property("well-formed images are extracted", prop.ForAll(
		func(alt, url string) bool {
			text := fmt.Sprintf("prefix ![%s](%s) suffix", alt, url)
			urls := ExtractEmbeddedImages(text)
			return len(urls) == 1 && urls[0] == url
		},
		gen.AlphaString().SuchThat(func(s string) bool { return !strings.ContainsAny(s, "[]") }),
		urlGen,
	))

	// Property: extraction preserves source order
	properties.Property("extraction preserves source order", prop.ForAll(
		func(first, second string) bool {
			text := fmt.Sprintf("![a](%s)\ntext\n![b](%s)", first, second)
			urls := ExtractEmbeddedImages(text)
			return len(urls) == 2 && urls[0] == first && urls[1] == second
		},
		urlGen,
		urlGen,
	))

	// Property: extraction never fails and never returns nil
	properties.Property("extraction is total", prop.ForAll(
		func(text string) bool {
			return ExtractEmbeddedImages(text) != nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestFlattenProperties verifies structural invariants of the
// flattened records.
func TestFlattenProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: label refs keep count and order
	properties.Property("LabelRefs keeps count and order", prop.ForAll(
		func(names []string) bool {
			labels := make([]Label, len(names))
			for i, n := range names {
				labels[i] = Label{ID: fmt.Sprintf("l%d", i), Name: n}
			}
			refs := LabelRefs(labels)
			if refs == nil || len(refs) != len(labels) {
				return false
			}
			for i := range refs {
				if refs[i].Name != names[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	// Property: a summary without relations still serializes the
	// relation keys
	properties.Property("summary keys survive empty relations", prop.ForAll(
		func(title string) bool {
			issue := &Issue{ID: "i", Identifier: "ENG-1", Title: title}
			data, err := json.Marshal(FlattenIssueSummary(issue, nil, nil, nil))
			if err != nil {
				return false
			}
			var raw map[string]json.RawMessage
			if err := json.Unmarshal(data, &raw); err != nil {
				return false
			}
			_, hasState := raw["state"]
			_, hasAssignee := raw["assignee"]
			_, hasLabels := raw["labels"]
			return hasState && hasAssignee && hasLabels
		},
		gen.AnyString(),
	))

	// Property: team states come out sorted by position
	properties.Property("FlattenTeam sorts states by position", prop.ForAll(
		func(positions []float64) bool {
			states := make([]WorkflowState, len(positions))
			for i, p := range positions {
				states[i] = WorkflowState{ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("state %d", i), Position: p}
			}
			info := FlattenTeam(&Team{ID: "t", Name: "Team"}, states)
			if len(info.States) != len(states) {
				return false
			}
			byID := make(map[string]float64, len(states))
			for _, s := range states {
				byID[s.ID] = s.Position
			}
			for i := 1; i < len(info.States); i++ {
				if byID[info.States[i-1].ID] > byID[info.States[i].ID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-100, 100)),
	))

	properties.TestingRun(t)
}
