package llm

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractionPromptNamesEveryField(t *testing.T) {
	for _, f := range RecordFields {
		if !strings.Contains(ExtractionPrompt, `"`+f+`"`) {
			t.Errorf("prompt does not mention field %q", f)
		}
	}
	if !strings.Contains(ExtractionPrompt, "Yes/No/Conditional") {
		t.Error("prompt should spell out the Recyclable enumeration")
	}
	if !strings.HasPrefix(ExtractionPrompt, "You are an intelligent system that extracts sustainability and recycling data") {
		t.Errorf("unexpected prompt opening: %q", ExtractionPrompt[:60])
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"[]", "[]"},
		{"  [1]  ", "[1]"},
		{"```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"```", ""},
		{"Here you go: [1]", "Here you go: [1]"},
	}
	for _, tc := range cases {
		if got := StripCodeFence(tc.in); got != tc.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRecords(t *testing.T) {
	content := "```json\n" + `[
  {"Product Name": "Milk 1L", "Packaging Type": "Tetra Pak", "Recyclable": "Conditional"},
  {"Product Name": "Bread", "Packaging Type": "plastic bag", "Recyclable": "no"}
]` + "\n```"

	recs, nonCanonical, err := ParseRecords(content)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	want := []Record{
		{ProductName: "Milk 1L", PackagingType: "Tetra Pak", Recyclable: "Conditional"},
		{ProductName: "Bread", PackagingType: "plastic bag", Recyclable: "no"},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`[1] "no"`}, nonCanonical); diff != "" {
		t.Fatalf("non-canonical mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecordsWrapsSingleObject(t *testing.T) {
	recs, _, err := ParseRecords(`{"Product Name": "Water", "Recyclable": "Yes"}`)
	if err != nil {
		t.Fatalf("ParseRecords: %v", err)
	}
	if len(recs) != 1 || recs[0].ProductName != "Water" {
		t.Fatalf("recs = %+v", recs)
	}
}

func TestValidateStructured(t *testing.T) {
	valid := `[{"Product Name": "Milk 1L", "Product Category": "Dairy", "Packaging Type": "Tetra Pak", "Recyclable": "Conditional", "Notes": ""}]`
	rep := ValidateStructured(valid)
	if !rep.Valid || rep.Records != 1 || rep.Error != "" {
		t.Fatalf("valid content reported %+v", rep)
	}

	for name, content := range map[string]string{
		"prose":       "I could not find any products on this receipt.",
		"empty":       "",
		"bad enum":    `[{"Product Name": "Milk", "Packaging Type": "carton", "Recyclable": "Sometimes"}]`,
		"missing key": `[{"Product Name": "Milk", "Recyclable": "Yes"}]`,
		"number":      `42`,
	} {
		t.Run(name, func(t *testing.T) {
			rep := ValidateStructured(content)
			if rep.Valid || rep.Error == "" {
				t.Fatalf("expected invalid report, got %+v", rep)
			}
		})
	}
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := map[string]any{"type": "object", "required": []string{"a"}}
	if err := ValidateJSONAgainstSchema(schema, []byte(`{"a": 1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateJSONAgainstSchema(schema, []byte(`{}`)); err == nil {
		t.Fatal("expected schema violation")
	}
}
