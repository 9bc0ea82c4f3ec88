// Package docs registers the OpenAPI document served by the swagger UI.
// Regenerate with `swag init -g cmd/apistation/docs.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "apistation maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Static status and the model aliases accepted by each route.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RootResponse"}}
                }
            }
        },
        "/api/key/generate": {
            "get": {
                "description": "Returns a random sk- token. The token is not stored and no route checks it.",
                "produces": ["application/json"],
                "tags": ["keys"],
                "summary": "Generate an API key",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIKeyResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/audio/transcriptions": {
            "post": {
                "description": "Forwards the uploaded file to the speech-recognition model and returns its JSON verbatim.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["audio"],
                "summary": "Transcribe audio",
                "parameters": [
                    {"type": "file", "description": "Audio file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/chat/completions": {
            "post": {
                "description": "Runs a chat completion and returns only the first choice's message.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Chat completion",
                "parameters": [
                    {"description": "Chat request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatMessage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/generate/image": {
            "post": {
                "description": "Renders the prompt with the aliased text-to-image model. Unknown aliases use the default model.",
                "consumes": ["application/json"],
                "produces": ["image/png"],
                "tags": ["image"],
                "summary": "Generate an image",
                "parameters": [
                    {"description": "Image request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ImageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.APIKeyResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string", "example": "sk-1a2b3c4d"},
                "quota": {"type": "string", "example": "unlimited"},
                "status": {"type": "string", "example": "active"}
            }
        },
        "types.ChatMessage": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "hello"},
                "role": {"type": "string", "example": "user"}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {
                "max_tokens": {"type": "integer", "example": 512},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/types.ChatMessage"}},
                "model_id": {"type": "string", "example": "qwen"},
                "temperature": {"type": "number", "example": 0.7}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "invalid JSON body"}
            }
        },
        "types.ImageRequest": {
            "type": "object",
            "properties": {
                "height": {"type": "integer", "example": 1024},
                "model_id": {"type": "string", "example": "flux-schnell"},
                "prompt": {"type": "string", "example": "A lighthouse on a cliff at dusk"},
                "width": {"type": "integer", "example": 1024}
            }
        },
        "types.ModelAliases": {
            "type": "object",
            "properties": {
                "chat": {"type": "array", "items": {"type": "string"}},
                "image": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.RootResponse": {
            "type": "object",
            "properties": {
                "models": {"$ref": "#/definitions/types.ModelAliases"},
                "service": {"type": "string", "example": "24h API Station"},
                "status": {"type": "string", "example": "active"},
                "ui_url": {"type": "string", "example": "/ui/"}
            }
        },
        "types.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 422},
                "error": {"type": "string", "example": "validation failed"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "apistation API",
	Description:      "HTTP gateway for image generation, chat completion and audio transcription on a managed inference provider.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
