package docs

import "github.com/swaggo/swag"

const docTemplateEvents = `{
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
        "/api/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events/create": {
            "post": {
                "security": [{"AuthToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/createEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event with enriched comments",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "event-not-found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"AuthToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Update an event (owner or admin)",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "user-not-event-owner", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"AuthToken": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete an event (owner or admin)",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "user-not-event-owner", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/events/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List an event's comments with commenter profiles",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/events/{id}/comment": {
            "post": {
                "security": [{"AuthToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Comment on an event",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/events/{id}/participant": {
            "post": {
                "security": [{"AuthToken": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Join an event",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "user-already-participant", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"AuthToken": []}],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Leave an event",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "user-not-participant", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "createEventRequest": {
            "type": "object",
            "required": ["title", "description", "date", "location"],
            "properties": {
                "title": {"type": "string", "minLength": 3, "maxLength": 100},
                "description": {"type": "string", "maxLength": 1000},
                "date": {"type": "string", "format": "date-time"},
                "location": {"type": "string", "maxLength": 200}
            }
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

// SwaggerInfoEvents holds exported Swagger Info so clients can modify it.
var SwaggerInfoEvents = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EventHub Events API",
	Description:      "Events, comments and participation. Comments are enriched with profiles from the auth service.",
	InfoInstanceName: "events",
	SwaggerTemplate:  docTemplateEvents,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}
