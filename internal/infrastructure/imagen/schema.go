package imagen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const predictResponseSchemaURL = "predict_response.json"

// The first prediction must carry a non-empty image payload. Later entries
// are not inspected.
const predictResponseSchema = `{
  "type": "object",
  "required": ["predictions"],
  "properties": {
    "predictions": {
      "type": "array",
      "minItems": 1,
      "prefixItems": [
        {
          "type": "object",
          "required": ["bytesBase64Encoded"],
          "properties": {
            "bytesBase64Encoded": {"type": "string", "minLength": 1}
          }
        }
      ]
    }
  }
}`

var predictResponseValidator = mustCompile(predictResponseSchemaURL, predictResponseSchema)

func mustCompile(url, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("schema resource %s: %v", url, err))
	}
	return c.MustCompile(url)
}

func validatePredictResponse(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty response body")
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return predictResponseValidator.Validate(doc)
}
