package plugin

// ManifestSchema is the JSON Schema for manifest.json shape validation
const ManifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "version", "minAppVersion", "author", "description", "main", "permissions"],
  "properties": {
    "id": { "type": "string", "minLength": 1 },
    "name": { "type": "string", "minLength": 1 },
    "version": { "type": "string", "minLength": 1 },
    "minAppVersion": { "type": "string", "minLength": 1 },
    "author": { "type": "string", "minLength": 1 },
    "description": { "type": "string", "minLength": 1 },
    "main": { "type": "string", "minLength": 1 },
    "permissions": {
      "type": "array",
      "items": { "type": "string" }
    },
    "authorUrl": { "type": "string" },
    "helpUrl": { "type": "string" },
    "fundingUrl": { "type": "string" },
    "category": { "type": "string" },
    "tags": {
      "type": "array",
      "items": { "type": "string" }
    },
    "supportLinks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": { "type": "string" },
          "url": { "type": "string" }
        }
      }
    }
  }
}`
