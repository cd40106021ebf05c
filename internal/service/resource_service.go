package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"advising_backend/pkg/logger"

	"go.uber.org/zap"
)

const maxSuggestedResources = 5

// LearningResource is one suggested free study resource.
type LearningResource struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ResourceService maps weak topics and a performance level to learning
// resources, via a single provider call with a curated fallback.
type ResourceService struct {
	AI *AIService
}

func NewResourceService(ai *AIService) *ResourceService {
	return &ResourceService{AI: ai}
}

// SuggestResources asks the primary provider for five free resources
// matching the weak topics. Any failure or non-array reply yields the
// curated list instead; this method never fails.
func (s *ResourceService) SuggestResources(ctx context.Context, weakTopics []string, level PerformanceLevel) []LearningResource {
	if len(weakTopics) == 0 {
		return FallbackResources()
	}

	if len(weakTopics) > 3 {
		weakTopics = weakTopics[:3]
	}

	prompt := fmt.Sprintf(`Student needs help with these topics: %s
Performance level: %s

Suggest 5 FREE learning resources (videos, tutorials, practice sites).

Return ONLY valid JSON array:
[
  {
    "title": "Resource title",
    "type": "video",
    "url": "https://youtube.com/...",
    "description": "Brief description"
  }
]

Requirements:
- Use real YouTube videos, freeCodeCamp, W3Schools, TutorialsPoint
- Focus on %s difficulty level
- Must be FREE resources only
- Return ONLY JSON, no markdown`, strings.Join(weakTopics, ", "), level, level)

	raw, _, err := s.AI.GenerateOnce(ctx, prompt, defaultSystemPrompt)
	if err != nil {
		logger.Log.Warn("resource suggestion failed, using curated list", zap.Error(err))
		return FallbackResources()
	}

	var resources []LearningResource
	if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &resources); err != nil || len(resources) == 0 {
		return FallbackResources()
	}

	if len(resources) > maxSuggestedResources {
		resources = resources[:maxSuggestedResources]
	}
	return resources
}

// FallbackResources is the fixed list of general-purpose free resources used
// when the provider cannot supply topic-specific ones.
func FallbackResources() []LearningResource {
	return []LearningResource{
		{
			Title:       "freeCodeCamp - Full Programming Course",
			Type:        "video",
			URL:         "https://www.youtube.com/@freecodecamp",
			Description: "Comprehensive free programming tutorials",
		},
		{
			Title:       "W3Schools - Interactive Tutorials",
			Type:        "tutorial",
			URL:         "https://www.w3schools.com/",
			Description: "Learn by examples with interactive exercises",
		},
		{
			Title:       "TutorialsPoint - Programming References",
			Type:        "article",
			URL:         "https://www.tutorialspoint.com/",
			Description: "Detailed programming guides and references",
		},
		{
			Title:       "Codecademy - Free Courses",
			Type:        "interactive",
			URL:         "https://www.codecademy.com/catalog/subject/all",
			Description: "Interactive coding practice",
		},
		{
			Title:       "GitHub Learning Lab",
			Type:        "practice",
			URL:         "https://lab.github.com/",
			Description: "Hands-on coding challenges",
		},
	}
}
