// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/v1/logs": {
            "get": {
                "description": "Filter logs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List control events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {
                        "enum": ["BLOWER_CHANGE", "SETPOINT_CHANGE", "POWER_ON", "POWER_OFF", "ERROR"],
                        "type": "string",
                        "description": "Event type",
                        "name": "type",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/panels/{id}": {
            "get": {
                "description": "Snapshot of one page load: both sliders, power and status line.",
                "produces": ["application/json"],
                "tags": ["panels"],
                "summary": "Get panel",
                "parameters": [
                    {"type": "string", "description": "Panel id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PanelState"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/panels/{id}/power": {
            "post": {
                "produces": ["application/json"],
                "tags": ["panels"],
                "summary": "Toggle power",
                "parameters": [
                    {"type": "string", "description": "Panel id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PanelState"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/panels/{id}/sliders/{name}": {
            "post": {
                "description": "Sets blower or setpoint. Out-of-range values are clamped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["panels"],
                "summary": "Move slider",
                "parameters": [
                    {"type": "string", "description": "Panel id", "name": "id", "in": "path", "required": true},
                    {"enum": ["blower", "setpoint"], "type": "string", "description": "Slider name", "name": "name", "in": "path", "required": true},
                    {"description": "Slider payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetSliderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SliderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/readings": {
            "get": {
                "description": "Gauge values with needle angle (0..180) and needle tip in the 200x100 dial.",
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "Current readings",
                "responses": {
                    "200": {"description": "count, gauges", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/readings/history": {
            "get": {
                "description": "Chart samples, oldest first.",
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "Temperature history",
                "responses": {
                    "200": {"description": "count, samples", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/chart.svg": {
            "get": {
                "description": "Blanket average and body temperature history as SVG.",
                "produces": ["image/svg+xml"],
                "tags": ["readings"],
                "summary": "Temperature chart",
                "responses": {
                    "200": {"description": "OK"},
                    "204": {"description": "fewer than two samples recorded"},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
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
        "handlers.SetSliderRequest": {
            "type": "object",
            "properties": {
                "value": {"description": "New slider value; clamped to the slider range and snapped to its step", "type": "number", "example": 70}
            }
        },
        "handlers.SliderResponse": {
            "type": "object",
            "properties": {
                "panel": {"$ref": "#/definitions/models.PanelState"},
                "slider": {"$ref": "#/definitions/models.SliderView"},
                "status": {"type": "string"}
            }
        },
        "models.PanelState": {
            "type": "object",
            "properties": {
                "blower": {"$ref": "#/definitions/models.SliderView"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "power_on": {"type": "boolean"},
                "setpoint": {"$ref": "#/definitions/models.SliderView"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.SliderView": {
            "type": "object",
            "properties": {
                "icon": {"type": "string"},
                "label": {"type": "string"},
                "max": {"type": "number"},
                "min": {"type": "number"},
                "name": {"type": "string"},
                "percent": {"type": "number"},
                "step": {"type": "number"},
                "track": {"type": "string"},
                "value": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blanket warmer dashboard API",
	Description:      "Page interaction and readings for the blanket warmer dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
