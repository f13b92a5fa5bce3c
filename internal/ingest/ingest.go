// internal/ingest/ingest.go

// Package ingest parses the mortgage portfolio container. The container
// structure is checked against a JSON schema before decoding, so a malformed
// file surfaces as one fatal error instead of a pile of zero-valued records.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"mortgage-pool-rater/internal/common/errors"
	"mortgage-pool-rater/internal/models"
)

// Portfolio is the input container shape: {"mortgages": [...]}.
type Portfolio struct {
	Mortgages []models.RawMortgage `json:"mortgages"`
}

// LoadFile reads and parses a portfolio file. Errors are fatal
// INPUT_CONTAINER_INVALID; field-level problems are left to the validator.
func LoadFile(path string) ([]models.RawMortgage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputContainerError(fmt.Sprintf("read %s: %v", path, err))
	}
	return Parse(data)
}

// Parse validates the container structure and decodes the records.
func Parse(data []byte) ([]models.RawMortgage, error) {
	schemaLoader := gojsonschema.NewStringLoader(containerSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.NewInputContainerError(err.Error())
	}
	if !result.Valid() {
		detail := ""
		for i, desc := range result.Errors() {
			if i > 0 {
				detail += "; "
			}
			detail += desc.String()
		}
		return nil, errors.NewInputContainerError(detail)
	}

	var portfolio Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, errors.NewInputContainerError(err.Error())
	}

	return portfolio.Mortgages, nil
}
