package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/homework-heap/internal/common"
)

// parseFilenameList extracts the filename list from a model response.
// It accepts {"school_related_files": [...]} or a bare JSON array.
func parseFilenameList(content string) ([]string, error) {
	content = cleanMarkdownWrapper(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty response", common.ErrMalformedResponse)
	}

	if strings.HasPrefix(content, "[") {
		var names []string
		if err := json.Unmarshal([]byte(content), &names); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
		}
		return names, nil
	}

	var jsonResp struct {
		Files *[]string `json:"school_related_files"`
	}
	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}
	if jsonResp.Files == nil {
		return nil, fmt.Errorf("%w: missing school_related_files", common.ErrMalformedResponse)
	}

	return *jsonResp.Files, nil
}

// cleanMarkdownWrapper strips ```json fences and surrounding prose some models add.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```JSON")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		return strings.TrimSpace(content)
	}

	if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
		return content
	}

	// Fall back to the outermost JSON object embedded in prose.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
