package metatag

const (
	GroupSchemaQAPage   = "schema_qa_page"
	TagSchemaQAPageType = "schema_qa_page_type"
)

// SchemaQAPageType is the "@type" tag of the Schema.org QAPage group.
var SchemaQAPageType = Descriptor{
	ID:          TagSchemaQAPageType,
	Label:       "@type",
	Description: "REQUIRED. The type of page.",
	Name:        "@type",
	Group:       GroupSchemaQAPage,
	Weight:      -10,
	Type:        "string",
	Secure:      false,
	Multiple:    false,
	Values:      StaticValues{"QAPage", "FAQPage"},
}

// Default returns a registry holding every tag shipped with this module.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(SchemaQAPageType)
	return r
}
