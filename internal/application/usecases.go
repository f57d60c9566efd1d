package application

import (
	"fmt"
	"strings"

	"github.com/morgansundqvist/musecase/internal/domain"
)

// Use-case names as shown in the sidebar.
const (
	FakeNewsDetection   = "Fake News Detection"
	AdvancedTranslation = "Advanced Translation"
	DataVisualization   = "Data Visualization"
	LeadGeneration      = "Lead Generation"
	TextSummarization   = "Text Summarization"
	SentimentAnalysis   = "Sentiment Analysis"
	CodeGeneration      = "Code Generation"
	ResumeScreening     = "Resume Screening"
	ChatbotQA           = "Chatbot Q&A"
	ReportWriting       = "AI-Powered Report Writing"
)

// TargetLanguages is the closed set offered by the translation use-case.
var TargetLanguages = []domain.Choice{
	{Value: "ta", Label: "Tamil"},
	{Value: "hi", Label: "Hindi"},
	{Value: "ml", Label: "Malayalam"},
	{Value: "mr", Label: "Marathi"},
	{Value: "gu", Label: "Gujarati"},
	{Value: "fr", Label: "French"},
	{Value: "es", Label: "Spanish"},
	{Value: "de", Label: "German"},
}

// composer turns raw inputs into the request sent upstream.
type composer func(uc domain.UseCase, inputs map[string]string) (domain.CompletionRequest, error)

type entry struct {
	useCase domain.UseCase
	compose composer
}

func textField(prompt string) domain.FieldDescriptor {
	return domain.FieldDescriptor{Label: domain.InputText, Prompt: prompt, Kind: domain.FieldText}
}

func fixedInstruction(name, title, prompt, instruction, button, resultLabel string) entry {
	return entry{
		useCase: domain.UseCase{
			Name:        name,
			Title:       title,
			Instruction: instruction,
			Fields:      []domain.FieldDescriptor{textField(prompt)},
			Output:      domain.OutputPlainText,
			ButtonLabel: button,
			ResultLabel: resultLabel,
		},
		compose: composeFixed,
	}
}

// useCaseTable lists every use-case in sidebar order.
func useCaseTable() []entry {
	codeGen := fixedInstruction(CodeGeneration, "AI-Powered Code Generator",
		"Describe the function/code you need:",
		"Generate well-structured Python code based on this description, following best practices.",
		"Generate Code", "")
	codeGen.useCase.Output = domain.OutputCodeBlock
	codeGen.useCase.Language = "python"

	return []entry{
		fixedInstruction(FakeNewsDetection, "Fake News Detection",
			"Enter news text:",
			"Analyze this news article and determine if it's real or fake based on verifiable facts and journalistic integrity.",
			"Analyze", ""),
		{
			useCase: domain.UseCase{
				Name:  AdvancedTranslation,
				Title: "Advanced Language Translation",
				Fields: []domain.FieldDescriptor{
					textField("Enter text to translate:"),
					{Label: domain.InputTargetLanguage, Prompt: "Select Target Language", Kind: domain.FieldChoice, Choices: TargetLanguages},
				},
				Output:      domain.OutputPlainText,
				ButtonLabel: "Translate",
				ResultLabel: "Translated Text",
			},
			compose: composeTranslation,
		},
		{
			useCase: domain.UseCase{
				Name:  DataVisualization,
				Title: "Data Visualization",
				Fields: []domain.FieldDescriptor{
					{Label: domain.InputFile, Prompt: "Upload CSV File", Kind: domain.FieldFile},
					{Label: domain.InputColumn, Prompt: "Select a column to visualize", Kind: domain.FieldColumn, Optional: true},
				},
				Output:      domain.OutputTableChart,
				ButtonLabel: "Visualize",
			},
		},
		{
			useCase: domain.UseCase{
				Name:  LeadGeneration,
				Title: "AI-Powered Lead Generation",
				Fields: []domain.FieldDescriptor{
					{Label: domain.InputIndustry, Prompt: "Enter Target Industry (e.g., AI, Finance, Healthcare)", Kind: domain.FieldText},
					{Label: domain.InputKeywords, Prompt: "Enter Keywords for Filtering Leads (comma-separated)", Kind: domain.FieldText, Optional: true},
				},
				Output:      domain.OutputPlainText,
				ButtonLabel: "Generate Leads",
				ResultLabel: "Generated Leads",
			},
			compose: composeLeadGeneration,
		},
		fixedInstruction(TextSummarization, "AI-Powered Text Summarization",
			"Enter text to summarize:",
			"Summarize the given text in a concise yet informative manner.",
			"Summarize", "Summary"),
		fixedInstruction(SentimentAnalysis, "Sentiment Analysis",
			"Enter text to analyze sentiment:",
			"Analyze this text and classify its sentiment as Positive, Negative, or Neutral with a short justification.",
			"Analyze Sentiment", ""),
		codeGen,
		fixedInstruction(ResumeScreening, "AI Resume Screening",
			"Enter job description or required skills:",
			"Screen resumes based on this job description, selecting the best candidates with matching skills.",
			"Screen Resumes", "Recommended Candidates"),
		fixedInstruction(ChatbotQA, "AI Chatbot Q&A",
			"Ask a question:",
			"Provide a well-researched and concise answer to this question.",
			"Get Answer", ""),
		fixedInstruction(ReportWriting, "AI-Powered Report Writing",
			"Enter topic or details for the report:",
			"Write a comprehensive, structured report on this topic including key insights.",
			"Generate Report", "Generated Report"),
	}
}

func composeFixed(uc domain.UseCase, inputs map[string]string) (domain.CompletionRequest, error) {
	text, err := requireText(inputs, domain.InputText)
	if err != nil {
		return domain.CompletionRequest{}, err
	}
	return domain.CompletionRequest{Instruction: uc.Instruction, UserContent: text}, nil
}

func composeTranslation(_ domain.UseCase, inputs map[string]string) (domain.CompletionRequest, error) {
	text, err := requireText(inputs, domain.InputText)
	if err != nil {
		return domain.CompletionRequest{}, err
	}
	code := strings.TrimSpace(inputs[domain.InputTargetLanguage])
	if !isTargetLanguage(code) {
		return domain.CompletionRequest{}, &domain.ValidationError{
			Field:  domain.InputTargetLanguage,
			Reason: fmt.Sprintf("unsupported language %q", code),
		}
	}
	return domain.CompletionRequest{
		UserContent: TranslationPrompt(code, text),
	}, nil
}

func composeLeadGeneration(_ domain.UseCase, inputs map[string]string) (domain.CompletionRequest, error) {
	industry, err := requireText(inputs, domain.InputIndustry)
	if err != nil {
		return domain.CompletionRequest{}, err
	}
	return domain.CompletionRequest{
		UserContent: LeadGenerationPrompt(industry, inputs[domain.InputKeywords]),
	}, nil
}

// TranslationPrompt embeds the text unmodified after the language code.
func TranslationPrompt(code, text string) string {
	return fmt.Sprintf("Translate the following text into %s using proper grammar and context: %s", code, text)
}

// LeadGenerationPrompt normalises the comma-separated keywords, keeping
// their order. An empty list leaves the keyword segment empty.
func LeadGenerationPrompt(industry, keywords string) string {
	return fmt.Sprintf("Generate a well-structured list of potential leads in the %s industry using the following keywords: %s. Include company name, contact email, and website.",
		strings.TrimSpace(industry), strings.Join(SplitKeywords(keywords), ", "))
}

func SplitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func isTargetLanguage(code string) bool {
	for _, l := range TargetLanguages {
		if l.Value == code {
			return true
		}
	}
	return false
}

// requireText rejects missing or whitespace-only input before any remote call.
// The value itself is passed on verbatim.
func requireText(inputs map[string]string, label string) (string, error) {
	v := inputs[label]
	if strings.TrimSpace(v) == "" {
		return "", &domain.ValidationError{Field: label, Reason: "must not be empty"}
	}
	return v, nil
}
