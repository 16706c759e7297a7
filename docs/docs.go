// Package docs holds the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/devices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "List tenant devices",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Device"}}},
                    "500": {"description": "Login failed", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/device": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["devices"],
                "summary": "Register a device",
                "parameters": [
                    {"description": "Device name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateDeviceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Device"}},
                    "400": {"description": "Missing name", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "500": {"description": "Creation failed", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/device/{id}/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["telemetry"],
                "summary": "Readings of the last 12 hours",
                "parameters": [
                    {"type": "string", "description": "Device ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Time series keyed by telemetry key", "schema": {"type": "object"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/device/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["telemetry"],
                "summary": "Daily averages over the last N days",
                "parameters": [
                    {"type": "string", "description": "Device ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "temperature", "description": "Telemetry key", "name": "key", "in": "query"},
                    {"type": "integer", "default": 7, "description": "Number of days (1-365)", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Time series keyed by telemetry key", "schema": {"type": "object"}},
                    "400": {"description": "Invalid days", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/device/{id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["telemetry"],
                "summary": "Daily, weekly and monthly temperature statistics",
                "parameters": [
                    {"type": "string", "description": "Device ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatsReport"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/api/analyses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "List journaled analyses",
                "parameters": [
                    {"type": "string", "description": "Start time (YYYY-MM-DD, YYYY-MM-DD HH:MM:SS or ISO 8601)", "name": "from", "in": "query"},
                    {"type": "string", "description": "End time, a bare date covers the whole day", "name": "to", "in": "query"},
                    {"type": "string", "description": "Device ID", "name": "deviceId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        },
        "/ws/device/{id}/latest": {
            "get": {
                "tags": ["telemetry"],
                "summary": "WebSocket stream of the last 12 hours of readings",
                "parameters": [
                    {"type": "string", "description": "Device ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Go duration, 1s..10m (default 30s)", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Milliseconds, used when interval is absent or invalid", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/ask": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Ask the analyst about a device's last 30 days",
                "parameters": [
                    {"type": "string", "description": "Device ID", "name": "deviceId", "in": "query", "required": true},
                    {"type": "string", "description": "Question", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.AskResult"}},
                    "400": {"description": "Missing deviceId", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "404": {"description": "No data", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/handlers.errorResponse"}},
                    "503": {"description": "Analysis disabled", "schema": {"$ref": "#/definitions/handlers.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.CreateDeviceRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}}
        },
        "models.Device": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.PeriodStat": {
            "type": "object",
            "properties": {
                "max": {"type": "number"},
                "min": {"type": "number"},
                "avg": {"type": "number"},
                "diff": {"type": "number"}
            }
        },
        "models.DailyStat": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "max": {"type": "number"},
                "min": {"type": "number"},
                "avg": {"type": "number"},
                "diff": {"type": "number"},
                "readings_count": {"type": "integer"}
            }
        },
        "models.StatsReport": {
            "type": "object",
            "properties": {
                "today": {"$ref": "#/definitions/models.PeriodStat"},
                "week": {"$ref": "#/definitions/models.PeriodStat"},
                "daily_breakdown": {"type": "array", "items": {"$ref": "#/definitions/models.DailyStat"}},
                "month_avg": {"type": "number"}
            }
        },
        "service.AskResult": {
            "type": "object",
            "properties": {"ai_analysis": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AIoT Brain API",
	Description:      "Telemetry views, aggregated statistics and AI analysis over ThingsBoard devices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
