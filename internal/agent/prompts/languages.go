package prompts

import "github.com/maxbolgarin/promoreport/internal/model"

// LanguageConfig defines the target language for AI responses
type LanguageConfig struct {
	Language     model.Language `yaml:"language"`     // Language code (en, es, de, ru)
	Instructions string         `yaml:"instructions"` // Language-specific instructions for the AI

	SummaryHeaders SummaryHeaders `yaml:"summary_headers"`
}

// SummaryHeaders are the mandated headers of a promotion summary.
// Title is a format string receiving the promotion type.
type SummaryHeaders struct {
	Title          string `yaml:"title"`
	Overview       string `yaml:"overview"`
	Features       string `yaml:"features"`
	FixesAndUpkeep string `yaml:"fixes_and_upkeep"`
}

// DefaultLanguages provides common language configurations
var DefaultLanguages = map[model.Language]LanguageConfig{
	model.LanguageEnglish: {
		Language:     model.LanguageEnglish,
		Instructions: "Respond in clear, professional English. Use technical terminology appropriately.",
		SummaryHeaders: SummaryHeaders{
			Title:          "%s Promotion Summary",
			Overview:       "Overview",
			Features:       "Features & Improvements",
			FixesAndUpkeep: "Fixes & Maintenance",
		},
	},
	model.LanguageSpanish: {
		Language:     model.LanguageSpanish,
		Instructions: "Responde en español claro y profesional. Usa terminología técnica apropiada.",
		SummaryHeaders: SummaryHeaders{
			Title:          "Resumen de promoción %s",
			Overview:       "Visión general",
			Features:       "Funcionalidades y mejoras",
			FixesAndUpkeep: "Correcciones y mantenimiento",
		},
	},
	model.LanguageGerman: {
		Language:     model.LanguageGerman,
		Instructions: "Antworten Sie in klarem, professionellem Deutsch. Verwenden Sie angemessene technische Terminologie.",
		SummaryHeaders: SummaryHeaders{
			Title:          "%s Promotion: Zusammenfassung",
			Overview:       "Überblick",
			Features:       "Funktionen und Verbesserungen",
			FixesAndUpkeep: "Fehlerbehebungen und Wartung",
		},
	},
	model.LanguageRussian: {
		Language:     model.LanguageRussian,
		Instructions: "Отвечайте на русском языке четко и профессионально. Используйте соответствующую техническую терминологию.",
		SummaryHeaders: SummaryHeaders{
			Title:          "Сводка продвижения: %s",
			Overview:       "Обзор",
			Features:       "Новые возможности и улучшения",
			FixesAndUpkeep: "Исправления и обслуживание",
		},
	},
}
