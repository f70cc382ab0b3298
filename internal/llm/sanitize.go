package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/ecoscan/constants"
)

// Record is one product entry as the prompt describes it.
type Record struct {
	ProductName           string `json:"Product Name"`
	ProductCategory       string `json:"Product Category,omitempty"`
	MaterialComposition   string `json:"Material Composition,omitempty"`
	PackagingType         string `json:"Packaging Type,omitempty"`
	Recyclable            string `json:"Recyclable,omitempty"`
	RecyclingInstructions string `json:"Recycling Instructions,omitempty"`
	Notes                 string `json:"Notes,omitempty"`
}

// StripCodeFence removes a surrounding markdown code fence (``` or ```json)
// that chat models commonly wrap JSON in.
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:] // drop the info string ("json")
	} else {
		t = ""
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// RecordsJSON extracts the JSON array from model output. A lone object is
// wrapped into a one-element array.
func RecordsJSON(content string) ([]byte, error) {
	body := []byte(StripCodeFence(content))
	if len(body) == 0 {
		return nil, fmt.Errorf("empty model output")
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("model output is not JSON")
	}
	switch body[0] {
	case '[':
		return body, nil
	case '{':
		var buf bytes.Buffer
		buf.WriteByte('[')
		buf.Write(body)
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("model output is JSON but not an array of records")
	}
}

// ParseRecords decodes model output into records and reports Recyclable
// labels that are not one of the canonical values.
func ParseRecords(content string) ([]Record, []string, error) {
	raw, err := RecordsJSON(content)
	if err != nil {
		return nil, nil, err
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, nil, fmt.Errorf("decode records: %w", err)
	}

	var nonCanonical []string
	for i, r := range recs {
		canon, ok := constants.CanonicalRecyclable(r.Recyclable)
		if !ok || string(canon) != r.Recyclable {
			nonCanonical = append(nonCanonical, fmt.Sprintf("[%d] %q", i, r.Recyclable))
		}
	}
	return recs, nonCanonical, nil
}
