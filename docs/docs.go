// Package docs is generated by swaggo/swag from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cleaner"],
                "summary": "Dashboard snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Dashboard"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/cleaner/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cleaner"],
                "summary": "Turn the cleaner on or off",
                "parameters": [{"description": "Desired state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ToggleRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ToggleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/cleaner/active": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cleaner"],
                "summary": "Arm or disarm the cleaner",
                "parameters": [{"description": "Desired active flag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ActiveRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ActiveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/batches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List ML batches",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "1-based page", "name": "page", "in": "query"},
                    {"type": "string", "description": "Substring of name or date", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BatchPage"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Ingest an ML batch",
                "parameters": [{"description": "Batch upload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.IngestBatchRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Batch"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/batches/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Get one batch",
                "parameters": [{"type": "string", "description": "Batch id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Batch"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/schedule": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Get cleaning schedule",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ScheduleEntry"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Replace cleaning schedule",
                "parameters": [{"description": "Full schedule", "name": "body", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ScheduleEntry"}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ReplaceScheduleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Add schedule entry",
                "parameters": [{"description": "New entry", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ScheduleEntry"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AddScheduleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/schedule/{index}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Delete schedule entry",
                "parameters": [{"type": "integer", "description": "0-based position", "name": "index", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List cleaner events",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["POWER_ON", "POWER_OFF", "ACTIVATED", "DEACTIVATED", "SCHEDULED_START", "AUTO_STOP"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentials"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.signUpResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue a bearer token",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.signInResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.credentials": {"type": "object", "required": ["password", "username"], "properties": {"password": {"type": "string"}, "username": {"type": "string"}}},
        "handlers.signUpResponse": {"type": "object", "properties": {"id": {"type": "integer"}}},
        "handlers.signInResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "handlers.ActiveRequest": {"type": "object", "required": ["active"], "properties": {"active": {"type": "boolean", "example": false}}},
        "handlers.ActiveResponse": {"type": "object", "properties": {"newActiveState": {"type": "boolean"}, "success": {"type": "boolean"}}},
        "handlers.ToggleRequest": {"type": "object", "required": ["state"], "properties": {"state": {"type": "boolean", "example": true}}},
        "handlers.ToggleResponse": {"type": "object", "properties": {"newState": {"type": "boolean"}, "success": {"type": "boolean"}}},
        "handlers.IngestImageRequest": {"type": "object", "required": ["url"], "properties": {"damageCount": {"type": "integer", "minimum": 0}, "url": {"type": "string"}}},
        "handlers.IngestBatchRequest": {"type": "object", "required": ["images"], "properties": {"date": {"type": "string"}, "images": {"type": "array", "items": {"$ref": "#/definitions/handlers.IngestImageRequest"}}, "name": {"type": "string"}}},
        "handlers.ReplaceScheduleResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "updatedSchedule": {"type": "array", "items": {"$ref": "#/definitions/models.ScheduleEntry"}}}},
        "handlers.AddScheduleResponse": {"type": "object", "properties": {"newScheduleItem": {"$ref": "#/definitions/models.ScheduleEntry"}, "success": {"type": "boolean"}}},
        "models.HistoryPoint": {"type": "object", "properties": {"state": {"type": "boolean"}, "time": {"type": "string"}}},
        "models.Dashboard": {"type": "object", "properties": {"imagesCaptured": {"type": "integer"}, "isActive": {"type": "boolean"}, "isCleanerOn": {"type": "boolean"}, "lastCleaningTime": {"type": "string"}, "onOffHistory": {"type": "array", "items": {"$ref": "#/definitions/models.HistoryPoint"}}}},
        "models.BatchImage": {"type": "object", "properties": {"damageCount": {"type": "integer"}, "id": {"type": "string"}, "url": {"type": "string"}}},
        "models.Batch": {"type": "object", "properties": {"damageCount": {"type": "integer"}, "date": {"type": "string"}, "id": {"type": "string"}, "images": {"type": "array", "items": {"$ref": "#/definitions/models.BatchImage"}}, "name": {"type": "string"}}},
        "models.BatchPage": {"type": "object", "properties": {"batches": {"type": "array", "items": {"$ref": "#/definitions/models.Batch"}}, "totalCount": {"type": "integer"}}},
        "models.ScheduleEntry": {"type": "object", "properties": {"day": {"type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"]}, "time": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Solar Cleaner API",
	Description:      "Control panel, ML damage-detection batches and cleaning schedule of a solar panel cleaner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
