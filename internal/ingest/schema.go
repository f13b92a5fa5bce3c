// internal/ingest/schema.go
package ingest

// containerSchema checks the container shape and field types only. Business
// rules (ranges, enumerations, cross-field checks) belong to the validator,
// which reports them per record instead of failing the whole file.
const containerSchema = `{
  "type": "object",
  "required": ["mortgages"],
  "properties": {
    "mortgages": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "credit_score": {"type": "integer"},
          "loan_amount": {"type": "number"},
          "property_value": {"type": "number"},
          "annual_income": {"type": "number"},
          "debt_to_income": {"type": "number"},
          "loan_to_value": {"type": "number"},
          "loan_type": {"type": "string"},
          "property_type": {"type": "string"},
          "delinquencies": {"type": "integer"}
        }
      }
    }
  }
}`
