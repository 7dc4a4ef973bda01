package docs

import "github.com/swaggo/swag"

const docTemplateAuth = `{
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
        "/authentication/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "phone-in-use, email-in-use or invalid payload", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/authentication/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "user-passive or invalid-password", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "user-not-found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/authentication/update": {
            "put": {
                "security": [{"AuthToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Update the caller's profile",
                "parameters": [
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/updateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/successResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/authentication/user/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Look up a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/userResponse"}},
                    "404": {"description": "user-not-found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "registerRequest": {
            "type": "object",
            "required": ["name", "surname", "phoneNumber", "password", "email"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 50},
                "surname": {"type": "string", "minLength": 2, "maxLength": 50},
                "phoneNumber": {"type": "string", "minLength": 12, "maxLength": 12},
                "password": {"type": "string", "minLength": 6, "maxLength": 72},
                "email": {"type": "string"}
            }
        },
        "loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "updateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "authResponse": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "isError": {"type": "boolean"},
                "success": {"type": "object"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "integer"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "AuthToken": {"type": "apiKey", "name": "x-auth-token", "in": "header"}
    }
}`

// SwaggerInfoAuth holds exported Swagger Info so clients can modify it.
var SwaggerInfoAuth = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EventHub Auth API",
	Description:      "Registration, login and profile lookup. Issues the x-auth-token used by every service.",
	InfoInstanceName: "auth",
	SwaggerTemplate:  docTemplateAuth,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}
