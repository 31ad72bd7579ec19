// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/levels": {
            "get": {
                "produces": ["application/json"],
                "summary": "List level summaries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/evaluate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Evaluate a candidate system prompt against a level",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/EvaluateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EvaluationResult"}},
                    "400": {"description": "Empty candidate"},
                    "404": {"description": "Unknown level"},
                    "503": {"description": "Completion unavailable"}
                }
            }
        },
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "summary": "Start a play session",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "Get session state",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "summary": "End a session and close its sockets",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}
            }
        },
        "/sessions/{id}/submissions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Submit a candidate system prompt for the current level",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Empty candidate"},
                    "409": {"description": "Duplicate, closed level or submission in flight"},
                    "429": {"description": "Rate limited"},
                    "503": {"description": "Completion unavailable"}
                }
            }
        },
        "/sessions/{id}/skip": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Skip the current level and move to the next one", "responses": {"200": {"description": "OK"}, "409": {"description": "Game finished"}}}
        },
        "/sessions/{id}/advance": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Advance to the next level", "responses": {"200": {"description": "OK"}, "409": {"description": "Level still active"}}}
        },
        "/sessions/{id}/restart": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Restart from level 1", "responses": {"200": {"description": "OK"}}}
        },
        "/sessions/{id}/hints/toggle": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Show or hide hints", "responses": {"200": {"description": "OK"}}}
        },
        "/sessions/{id}/hints/next": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Next hint", "responses": {"200": {"description": "OK"}}}
        },
        "/sessions/{id}/hints/prev": {
            "post": {"security": [{"BearerAuth": []}], "summary": "Previous hint", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "EvaluateRequest": {
            "type": "object",
            "properties": {
                "levelNumber": {"type": "integer"},
                "candidate": {"type": "string"}
            }
        },
        "SubmitRequest": {
            "type": "object",
            "properties": {
                "candidate": {"type": "string"}
            }
        },
        "EvaluationResult": {
            "type": "object",
            "properties": {
                "similarityScore": {"type": "number"},
                "aiResponse": {"type": "string"},
                "hint": {"type": "string"},
                "passed": {"type": "boolean"},
                "scoreUnavailable": {"type": "boolean"},
                "hintUnavailable": {"type": "boolean"},
                "scoreMethod": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "PromptQuest API",
	Description:      "Prompt engineering game: reverse-engineer the system prompt behind a reference conversation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
