package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/GatherMatch/models"
)

// GeneratedContent is what a content backend produces for a new activity.
type GeneratedContent struct {
	Title                string
	Description          string
	StartTime            time.Time
	RecommendedEquipment []string
}

// ContentGenerator turns free-form activity input into descriptive content.
// The template implementation below is a stand-in; a real generation
// backend satisfies the same interface.
type ContentGenerator interface {
	Generate(input models.ActivityInput) (GeneratedContent, error)
}

type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(input models.ActivityInput) (GeneratedContent, error) {
	title := strings.TrimSpace(fmt.Sprintf("%s %s outing", input.Location, input.Theme))
	if title == "outing" {
		title = "Group outing"
	}

	description := input.Prompt
	if description == "" {
		description = fmt.Sprintf("A group activity around %s.", input.Theme)
	}

	// Default start: tomorrow morning, local time.
	tomorrow := time.Now().Add(24 * time.Hour)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, tomorrow.Location())

	return GeneratedContent{
		Title:                title,
		Description:          description,
		StartTime:            start,
		RecommendedEquipment: []string{"comfortable shoes", "water bottle"},
	}, nil
}
