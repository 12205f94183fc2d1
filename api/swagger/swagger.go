package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Classroom timetable scheduling with parity-aware weekly slots",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login and session management"},
        {"name": "Schedules", "description": "Schedule writes and weekly views"},
        {"name": "Buildings", "description": "Campus building management"},
        {"name": "Auditoriums", "description": "Room management"},
        {"name": "Reference", "description": "Day and time-slot catalogs"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Logged out"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Changed"}
                }
            }
        },
        "/schedules": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot conflict"}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/schedules/weekly": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Weekly building grid",
                "parameters": [
                    {"name": "building_id", "in": "query", "required": true, "type": "string"},
                    {"name": "shift", "in": "query", "required": true, "type": "integer"},
                    {"name": "week_type", "in": "query", "required": true, "type": "string", "enum": ["odd", "even"]},
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/week": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Auditorium week view",
                "parameters": [
                    {"name": "building_id", "in": "query", "required": true, "type": "string"},
                    {"name": "shift", "in": "query", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/weekly/export/csv": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export weekly grid as CSV",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/schedules/weekly/export/pdf": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export weekly grid as PDF",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "PDF payload"}
                }
            }
        },
        "/buildings": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List buildings",
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "address", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Buildings"],
                "summary": "Create building",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/buildings/{id}": {
            "get": {
                "tags": ["Buildings"],
                "summary": "Get building",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Buildings"],
                "summary": "Update building",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Buildings"],
                "summary": "Delete building",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/buildings/{id}/auditoriums": {
            "get": {
                "tags": ["Auditoriums"],
                "summary": "List auditoriums of a building",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "min_capacity", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Auditoriums"],
                "summary": "Create auditorium",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/auditoriums/{id}": {
            "get": {
                "tags": ["Auditoriums"],
                "summary": "Get auditorium",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "put": {
                "tags": ["Auditoriums"],
                "summary": "Update auditorium",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "delete": {
                "tags": ["Auditoriums"],
                "summary": "Delete auditorium",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/days": {
            "get": {
                "tags": ["Reference"],
                "summary": "List teaching days",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/time-slots": {
            "get": {
                "tags": ["Reference"],
                "summary": "List time slots of a shift",
                "parameters": [
                    {"name": "shift", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "required": ["group_name", "subject_name", "subject_type", "teacher_name", "auditorium_id", "day_id", "time_slot_id", "shift", "week_type", "start_date", "end_date"],
            "properties": {
                "group_name": {"type": "string"},
                "subject_name": {"type": "string"},
                "subject_type": {"type": "string"},
                "teacher_name": {"type": "string"},
                "auditorium_id": {"type": "string"},
                "day_id": {"type": "integer"},
                "time_slot_id": {"type": "integer"},
                "shift": {"type": "integer"},
                "week_type": {"type": "string", "enum": ["odd", "even", "both"]},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
