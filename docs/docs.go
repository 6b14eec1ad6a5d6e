// Package docs holds the Swagger document served at /swagger/. It is maintained
// by hand; keep it in sync with the godoc annotations in handler/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
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
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Project information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HomeResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "get the status of server",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Show the status of server",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Exchanges a username and password for a bearer access token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "400": {"description": "Malformed request body", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "401": {"description": "Invalid login", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "500": {"description": "Token could not be issued", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List all transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Transaction"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Add a transaction",
                "parameters": [
                    {"description": "Name and amount", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "401": {"description": "Unauthorized: Invalid or missing token", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Transaction"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Fields omitted from the body keep their current value. The date never changes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UpdateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "400": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "401": {"description": "Unauthorized: Invalid or missing token", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "401": {"description": "Unauthorized: Invalid or missing token", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        }
    },
    "definitions": {
        "common.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "model.CreateTransactionRequest": {
            "type": "object",
            "required": ["amount", "name"],
            "properties": {
                "amount": {"type": "number"},
                "name": {"type": "string", "maxLength": 100, "minLength": 1}
            }
        },
        "model.HomeResponse": {
            "type": "object",
            "properties": {
                "developer": {"type": "string"},
                "mission_statement": {"type": "string"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "message": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "model.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "model.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "date": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "model.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "name": {"type": "string", "maxLength": 100, "minLength": 1}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	Title:            "Finance Tracker API",
	Description:      "Personal finance tracker with token-protected transaction writes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
