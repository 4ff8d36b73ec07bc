package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Insurance Claims API",
        "description": "API-key gated insurance claims CRUD with fraud assessment and agent dispatch",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Claims", "description": "Claim filing and lookup"},
        {"name": "Logs", "description": "Append-only audit log"},
        {"name": "Agent", "description": "Fraud assessment and natural-language dispatch"}
    ],
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/": {
            "get": {
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "Service is running"}
                }
            }
        },
        "/claims": {
            "get": {
                "tags": ["Claims"],
                "summary": "List claims",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "Exact status filter"}
                ],
                "responses": {
                    "200": {"description": "Claims", "schema": {"type": "array", "items": {"$ref": "#/definitions/Claim"}}}
                }
            },
            "post": {
                "tags": ["Claims"],
                "summary": "File a new claim",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClaimRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Claim"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/Detail"}},
                    "409": {"description": "Duplicate claim number", "schema": {"$ref": "#/definitions/Detail"}}
                }
            }
        },
        "/claims/export": {
            "get": {
                "tags": ["Claims"],
                "summary": "Download the claim table as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered report"}
                }
            }
        },
        "/claims/{identifier}": {
            "get": {
                "tags": ["Claims"],
                "summary": "Fetch a claim by numeric id or claim number",
                "parameters": [
                    {"name": "identifier", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Claim", "schema": {"$ref": "#/definitions/Claim"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Detail"}}
                }
            }
        },
        "/logs": {
            "get": {
                "tags": ["Logs"],
                "summary": "List audit log entries",
                "responses": {
                    "200": {"description": "Audit entries", "schema": {"type": "array", "items": {"$ref": "#/definitions/ClaimLog"}}}
                }
            }
        },
        "/agent/check_fraud/{claim_id}": {
            "get": {
                "tags": ["Agent"],
                "summary": "Score a claim against the zero-shot fraud classifier",
                "parameters": [
                    {"name": "claim_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Assessment", "schema": {"$ref": "#/definitions/FraudAssessment"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Detail"}}
                }
            }
        },
        "/agent/query": {
            "post": {
                "tags": ["Agent"],
                "summary": "Ask the claims agent a free-text question",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AgentQuery"}}
                ],
                "responses": {
                    "200": {"description": "Answer", "schema": {"$ref": "#/definitions/AgentAnswer"}},
                    "500": {"description": "Agent failure", "schema": {"$ref": "#/definitions/Detail"}}
                }
            }
        }
    },
    "definitions": {
        "Claim": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "claim_number": {"type": "string"},
                "claimant_name": {"type": "string"},
                "amount": {"type": "number"},
                "status": {"type": "string"},
                "date_filed": {"type": "string", "format": "date"},
                "description": {"type": "string"},
                "is_approved": {"type": "boolean"}
            }
        },
        "CreateClaimRequest": {
            "type": "object",
            "required": ["claim_number", "claimant_name", "amount"],
            "properties": {
                "claim_number": {"type": "string"},
                "claimant_name": {"type": "string"},
                "amount": {"type": "number"},
                "status": {"type": "string"},
                "date_filed": {"type": "string", "format": "date"},
                "description": {"type": "string"},
                "is_approved": {"type": "boolean"}
            }
        },
        "ClaimLog": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "claim_id": {"type": "integer"},
                "action": {"type": "string"},
                "message": {"type": "string"},
                "timestamp": {"type": "string", "format": "date"}
            }
        },
        "FraudAssessment": {
            "type": "object",
            "properties": {
                "claim_id": {"type": "integer"},
                "claim_text": {"type": "string"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "scores": {"type": "array", "items": {"type": "number"}},
                "predicted_label": {"type": "string"},
                "fraud_probability": {"type": "number"}
            }
        },
        "AgentQuery": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "question": {"type": "string"}
            }
        },
        "AgentAnswer": {
            "type": "object",
            "properties": {
                "response": {"type": "string"}
            }
        },
        "Detail": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
