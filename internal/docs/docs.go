// Package docs registers the swagger document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/audits": {
            "get": {
                "description": "Newest-first audit records across every audit table, or one table when table is set",
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "List audit records",
                "parameters": [
                    {"type": "string", "name": "table", "in": "query"},
                    {"type": "string", "name": "action", "in": "query"},
                    {"type": "integer", "name": "usuario_id", "in": "query"},
                    {"type": "string", "name": "fecha_inicio", "in": "query"},
                    {"type": "string", "name": "fecha_fin", "in": "query"},
                    {"type": "string", "name": "busqueda", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/audits/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "Audit statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/audits/table/{table}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "List audit records of one table",
                "parameters": [{"type": "string", "name": "table", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unknown table or invalid input"}}
            }
        },
        "/audits/user/{usuario_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "List audit records of one user",
                "parameters": [{"type": "integer", "name": "usuario_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/audits/records/{table}/{audit_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "description": "Served under /records/ so the static /table and /user feeds never collide with the {table} segment",
                "summary": "Get audit record",
                "parameters": [
                    {"type": "string", "name": "table", "in": "path", "required": true},
                    {"type": "integer", "name": "audit_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Record not found"}}
            }
        },
        "/audits/report": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["audits"],
                "summary": "Download audit report",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ReportRequest"}}],
                "responses": {"200": {"description": "XLSX workbook", "schema": {"type": "file"}}}
            }
        },
        "/audits/purge": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "Purge old audit records",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PurgeRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "code": {"type": "string", "example": "INVALID_INPUT"},
                "message": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handlers.PurgeRequest": {
            "type": "object",
            "required": ["dias"],
            "properties": {"dias": {"type": "integer", "minimum": 30}}
        },
        "handlers.ReportRequest": {
            "type": "object",
            "required": ["fecha_inicio", "fecha_fin", "tipo_reporte"],
            "properties": {
                "fecha_inicio": {"type": "string", "example": "2024-01-01"},
                "fecha_fin": {"type": "string", "example": "2024-01-31"},
                "tabla": {"type": "string", "example": "reserva"},
                "accion": {"type": "string", "example": "INSERT"},
                "usuario_id": {"type": "integer"},
                "tipo_reporte": {"type": "string", "example": "summary"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Magic Travel Audit API",
	Description:      "Audit log queries, statistics and spreadsheet reports for the Magic Travel Guatemala back office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
