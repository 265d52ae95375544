package render

import (
	"encoding/json"
	"fmt"

	"github.com/dossier-dev/dossier/internal/model"
	"gopkg.in/yaml.v3"
)

// JSON renders the report as indented JSON with a trailing newline.
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders the report as YAML.
func (r *Renderer) YAML(report *model.Report) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}
