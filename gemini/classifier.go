// Package gemini provides LLM-assisted categorization of places that no
// ruleset matched.
package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmertens/annuaire"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Classifier implements annuaire.Classifier at compile time.
var _ annuaire.Classifier = (*Classifier)(nil)

// Classifier implements annuaire.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns a category per place ID. Places the model cannot decide
// on, or answers it returns outside the known categories, are omitted.
func (c *Classifier) Classify(ctx context.Context, places []*annuaire.Place) (map[string]annuaire.Category, error) {
	if len(places) == 0 {
		return nil, annuaire.Errorf(annuaire.EINVALID, "at least one place required")
	}

	prompt := BuildUserPrompt(places)
	config := BuildConfig()

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, annuaire.Errorf(annuaire.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text(), places), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify French-speaking organic/local food businesses. " +
					"For each numbered place, answer with one line in the form " +
					"\"<number>: <category>\" where category is one of: producer " +
					"(farm, beekeeper, grower), shop (store selling organic or " +
					"local goods), market (recurring open-air or covered market), " +
					"or unknown if you cannot tell. No other text.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt renders the numbered place list sent to the model.
func BuildUserPrompt(places []*annuaire.Place) string {
	var sb strings.Builder
	sb.WriteString("<places>\n")
	for i, p := range places {
		sb.WriteString("<place>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<name>%s</name>\n", p.Name)
		if p.Address != "" {
			fmt.Fprintf(&sb, "<address>%s</address>\n", p.Address)
		}
		if len(p.Types) > 0 {
			fmt.Fprintf(&sb, "<types>%s</types>\n", annuaire.JoinTypes(p.Types))
		}
		sb.WriteString("</place>\n")
	}
	sb.WriteString("</places>\n\nClassify each place.")
	return sb.String()
}

// ParseResponse maps "<number>: <category>" lines back onto place IDs.
// Unparseable lines, out-of-range indexes and unknown categories are
// dropped rather than failing the whole batch.
func ParseResponse(text string, places []*annuaire.Place) map[string]annuaire.Category {
	out := make(map[string]annuaire.Category)
	for _, line := range strings.Split(text, "\n") {
		idx, category, ok := parseLine(line)
		if !ok || idx < 1 || idx > len(places) {
			continue
		}
		if category == annuaire.CategoryUnknown {
			continue // no information gained
		}
		out[places[idx-1].ID] = category
	}
	return out
}

func parseLine(line string) (int, annuaire.Category, bool) {
	num, rest, found := strings.Cut(strings.TrimSpace(line), ":")
	if !found {
		return 0, "", false
	}
	idx, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, "", false
	}
	category := annuaire.Category(strings.ToLower(strings.TrimSpace(rest)))
	if !category.Valid() {
		return 0, "", false
	}
	return idx, category, true
}
