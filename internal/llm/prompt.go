package llm

// PromptVersion identifies ExtractionPrompt in logs. Bump it whenever the text
// changes.
const PromptVersion = "recycling-v1"

// ExtractionPrompt is the system message sent with every structured
// extraction. The user message is the OCR text, unmodified.
const ExtractionPrompt = `You are an intelligent system that extracts sustainability and recycling data from shopping receipts.

Your job is to:
- Extract Product Name
- Identify Packaging Type (e.g., PET bottle, Tetra Pak, paper)
- Determine if packaging is recyclable
- Include local recycling instructions if location is available
- Present everything in this format:

[
  {
    "Product Name": "...",
    "Product Category": "...",
    "Material Composition": "...",
    "Packaging Type": "...",
    "Recyclable": "Yes/No/Conditional",
    "Recycling Instructions": "...",
    "Notes": "..."
  }
]`

// Record field names, as the prompt spells them.
const (
	FieldProductName           = "Product Name"
	FieldProductCategory       = "Product Category"
	FieldMaterialComposition   = "Material Composition"
	FieldPackagingType         = "Packaging Type"
	FieldRecyclable            = "Recyclable"
	FieldRecyclingInstructions = "Recycling Instructions"
	FieldNotes                 = "Notes"
)

// RecordFields lists the record keys in prompt order.
var RecordFields = []string{
	FieldProductName,
	FieldProductCategory,
	FieldMaterialComposition,
	FieldPackagingType,
	FieldRecyclable,
	FieldRecyclingInstructions,
	FieldNotes,
}
