// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/students/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a student",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/professors/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a professor",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/students/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in as a student",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/professors/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in as a professor",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.RefreshTokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Revoke a refresh token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}}}
            }
        },
        "/auth/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/professors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["professors"],
                "summary": "List professors",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}}}
            }
        },
        "/professors/availability": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["professors"],
                "summary": "Publish an availability window",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PublishAvailabilityRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AvailabilityWindow"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/professors/appointments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["professors"],
                "summary": "List appointments booked with the calling professor",
                "parameters": [{"in": "query", "name": "status", "type": "string", "enum": ["active", "cancelled"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}}}
            }
        },
        "/professors/availability/{appointmentId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["professors"],
                "summary": "Cancel an appointment",
                "parameters": [{"in": "path", "name": "appointmentId", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Appointment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        },
        "/students/availability": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "List availability windows",
                "parameters": [
                    {"in": "query", "name": "professorId", "type": "string"},
                    {"in": "query", "name": "date", "type": "string"},
                    {"in": "query", "name": "openOnly", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}}}
            }
        },
        "/students/appointments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "List the caller's appointments",
                "parameters": [{"in": "query", "name": "status", "type": "string", "enum": ["active", "cancelled"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.ResponseData"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Book an appointment",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateAppointmentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Appointment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.ResponseData"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/utils.ResponseData"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.SignupRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.RefreshTokenRequest": {
            "type": "object",
            "properties": {"refreshToken": {"type": "string"}}
        },
        "handlers.PublishAvailabilityRequest": {
            "type": "object",
            "required": ["date", "endTime", "startTime"],
            "properties": {
                "date": {"type": "string", "example": "2025-05-01"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "11:00"}
            }
        },
        "handlers.CreateAppointmentRequest": {
            "type": "object",
            "required": ["date", "endTime", "professorId", "startTime"],
            "properties": {
                "professorId": {"type": "string"},
                "date": {"type": "string", "example": "2025-05-01"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "10:00"}
            }
        },
        "models.AvailabilityWindow": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "professorId": {"type": "string"},
                "date": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "professorId": {"type": "string"},
                "studentId": {"type": "string"},
                "date": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "cancelled"]},
                "cancelledAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "scheduling.FieldError": {
            "type": "object",
            "properties": {
                "path": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "utils.ResponseData": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/scheduling.FieldError"}}
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
	Title:            "Office Hours API",
	Description:      "Professors publish availability, students book and list appointments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
