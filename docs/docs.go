// Package docs holds the Swagger description of the dashboard API.
package docs

import "github.com/swaggo/swag"

// InstanceName is the swag instance the Swagger UI reads.
const InstanceName = "dashboard"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/datasets": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Upload a ride records file",
                "parameters": [
                    {"type": "file", "description": "Ride records (.csv or .xlsx)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Dataset, session token, filter options and notices"},
                    "400": {"description": "Bad request"},
                    "413": {"description": "File too large"},
                    "422": {"description": "Missing columns or unreadable file"}
                }
            }
        },
        "/api/v1/datasets/{dataset_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Dataset summary",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "dataset_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Dataset summary and filter options"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Dataset expired"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["datasets"],
                "summary": "Drop the dataset",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "dataset_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Dataset expired"}
                }
            }
        },
        "/api/v1/datasets/{dataset_id}/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Filtered dashboard",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "dataset_id", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Booking status, repeatable", "name": "status", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Vehicle type, repeatable", "name": "vehicle", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Payment method, repeatable", "name": "payment", "in": "query"},
                    {"type": "string", "description": "First day, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Last day, YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Metrics, aggregates, charts and notices"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Dataset expired"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/datasets/{dataset_id}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["datasets"],
                "summary": "Export the filtered rows",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "dataset_id", "in": "path", "required": true},
                    {"type": "string", "description": "csv (default) or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/ws/datasets/{dataset_id}": {
            "get": {
                "tags": ["datasets"],
                "summary": "Live filtering",
                "description": "Websocket. Every JSON filter message is answered with the full dashboard.",
                "parameters": [
                    {"type": "string", "description": "Dataset ID", "name": "dataset_id", "in": "path", "required": true},
                    {"type": "string", "description": "Session token", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token returned by the upload.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ride Analytics Dashboard API",
	Description:      "Upload ride booking exports, filter them and read back metrics, aggregates and chart URLs.",
	InfoInstanceName: InstanceName,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
