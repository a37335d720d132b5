package ai

// TaxonomyEntry is one reference label with a short description shown to the
// model. The classifier prefers these labels but may propose new ones when a
// paper fits none.
type TaxonomyEntry struct {
	Label       string
	Description string
}

// PrimaryAreas defines the reference labels for a paper's primary area.
var PrimaryAreas = []TaxonomyEntry{
	{"text_models", "Text generation/understanding models, e.g. language models, translation"},
	{"multimodal_models", "Models handling text + multimodal input/output"},
	{"audio_models", "Speech and audio understanding or generation models"},
	{"video_models", "Video understanding, generation or editing models"},
	{"vla_models", "Vision-language-action multimodal agent/robot models"},
	{"diffusion_models", "Diffusion, flow-matching and other image generation models"},
}

// SecondaryFocuses defines the reference labels for a paper's secondary focus.
var SecondaryFocuses = []TaxonomyEntry{
	{"dialogue_systems", "Dialogue, customer service, assistant scenarios"},
	{"long_context", "Long text / long context processing"},
	{"reasoning", "Reasoning, chain-of-thought, mathematical abilities"},
	{"model_compression", "Distillation, quantization, pruning techniques"},
	{"model_architecture", "Novel model architecture design or frameworks"},
	{"alignment", "Value alignment, safety, bias governance"},
	{"training_optimization", "Training strategies, efficiency, data recipes"},
	{"tech_reports", "Official technical reports or roadmaps"},
}

// ApplicationDomains defines the reference labels for a paper's application domain.
var ApplicationDomains = []TaxonomyEntry{
	{"medical_ai", "Medical, pharmaceutical, life science applications"},
	{"education_ai", "Education, teaching, examination scenarios"},
	{"code_generation", "Programming and software engineering"},
	{"legal_ai", "Legal, compliance, judicial scenarios"},
	{"financial_ai", "Finance, business analytics"},
	{"general_purpose", "General purpose or not yet categorised"},
}
