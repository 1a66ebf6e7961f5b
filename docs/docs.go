// Package docs holds the OpenAPI document served at /v1/swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Service health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Degraded", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.RegisterRequest"}},
                    {"type": "file", "name": "profile_pic", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update your profile",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete your account",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cvs": {
            "get": {
                "tags": ["cvs"],
                "summary": "List CVs",
                "parameters": [{"type": "boolean", "name": "with_user", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["cvs"],
                "summary": "Create a CV",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "cv", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.CreateCVRequest"}},
                    {"type": "file", "name": "pdf", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/cvs/{id}": {
            "get": {
                "tags": ["cvs"],
                "summary": "Get a CV",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "put": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["cvs"],
                "summary": "Update a CV",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["cvs"],
                "summary": "Delete a CV",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/cvs/user/{userId}": {
            "get": {
                "tags": ["cvs"],
                "summary": "List a user's CVs",
                "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/vacancies": {
            "get": {
                "tags": ["vacancies"],
                "summary": "List active vacancies",
                "parameters": [
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "work_mode", "in": "query"},
                    {"type": "string", "name": "experience_level", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "Create a vacancy",
                "parameters": [{"name": "vacancy", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.VacancyRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/vacancies/my": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "List my vacancies",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/vacancies/{id}": {
            "get": {
                "tags": ["vacancies"],
                "summary": "Get a vacancy",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "put": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "Update a vacancy",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "vacancy", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.VacancyRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "Delete a vacancy",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/vacancies/{id}/toggle": {
            "patch": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "Toggle a vacancy's active flag",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/vacancies/{id}/applications": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["vacancies"],
                "summary": "List applications to a vacancy",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/vacancies/{id}/applications/export": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["vacancies"],
                "summary": "Export applicants of a vacancy",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"enum": ["xlsx", "csv"], "type": "string", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications": {
            "post": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["applications"],
                "summary": "Apply to a vacancy",
                "parameters": [{"name": "application", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.ApplyRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/applications/my": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["applications"],
                "summary": "List my applications",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/applications/vacancy/{vacancyId}": {
            "get": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["applications"],
                "summary": "List applications to one of my vacancies",
                "parameters": [{"type": "string", "name": "vacancyId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/applications/{id}": {
            "put": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["applications"],
                "summary": "Update an application",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.UpdateApplicationRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BasicAuth": []}, {"BearerAuth": []}],
                "tags": ["applications"],
                "summary": "Delete an application",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {},
                "request_id": {"type": "string"}
            }
        },
        "v1.RegisterRequest": {
            "type": "object",
            "required": ["login", "name", "password", "role"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "login": {"type": "string", "maxLength": 50, "minLength": 3},
                "password": {"type": "string", "maxLength": 72, "minLength": 6},
                "role": {"type": "string", "enum": ["intern", "recruiter"]},
                "description": {"type": "string", "maxLength": 2000}
            }
        },
        "v1.LoginRequest": {
            "type": "object",
            "required": ["login", "password"],
            "properties": {
                "login": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "v1.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "login": {"type": "string", "maxLength": 50, "minLength": 3},
                "password": {"type": "string", "maxLength": 72, "minLength": 6},
                "role": {"type": "string", "enum": ["intern", "recruiter"]},
                "description": {"type": "string", "maxLength": 2000}
            }
        },
        "v1.CreateCVRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 5000}
            }
        },
        "v1.VacancyRequest": {
            "type": "object",
            "required": ["description", "experience_level", "location", "title", "work_mode"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 10000},
                "requirements": {"type": "array", "items": {"type": "string"}},
                "salary_range": {"type": "string", "maxLength": 100},
                "location": {"type": "string", "maxLength": 200},
                "work_mode": {"type": "string", "maxLength": 50},
                "experience_level": {"type": "string", "maxLength": 50},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "v1.ApplyRequest": {
            "type": "object",
            "required": ["vacancy_id"],
            "properties": {
                "vacancy_id": {"type": "string", "format": "uuid"},
                "cv_id": {"type": "string", "format": "uuid"},
                "cover_letter": {"type": "string", "maxLength": 10000},
                "resume_url": {"type": "string", "maxLength": 2000}
            }
        },
        "v1.UpdateApplicationRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "reviewed", "accepted", "rejected", "cancelled"]},
                "cover_letter": {"type": "string", "maxLength": 10000},
                "resume_url": {"type": "string", "maxLength": 2000}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "type": "basic"
        },
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "InternView API",
	Description:      "Internship and job matching backend: users, CVs, vacancies and applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
