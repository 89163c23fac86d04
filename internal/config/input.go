package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/kpgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates request bytes
func (ip *InputParser) Parse(data []byte) (*domain.Request, error) {
	var req domain.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	return &req, nil
}

// ValidateRequest validates every section present in the request
func (ip *InputParser) ValidateRequest(req *domain.Request) error {
	if req.IsEmpty() {
		return fmt.Errorf("at least one of national, basic_pension or shortfall is required: %w", domain.ErrInvalidInput)
	}
	if req.National != nil {
		if err := req.National.Validate(); err != nil {
			return fmt.Errorf("national: %w", err)
		}
	}
	if req.BasicPension != nil {
		if err := req.BasicPension.Validate(); err != nil {
			return fmt.Errorf("basic_pension: %w", err)
		}
	}
	if req.Shortfall != nil {
		if err := req.Shortfall.Validate(); err != nil {
			return fmt.Errorf("shortfall: %w", err)
		}
	}
	return nil
}
