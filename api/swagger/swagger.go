package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Blog API",
        "description": "REST backend for the blog platform",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration, login, token refresh and logout"},
        {"name": "Users", "description": "Profile management"},
        {"name": "Posts", "description": "Blog posts"},
        {"name": "Comments", "description": "Post comments"}
    ],
    "paths": {
        "/auth/registration": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegistrationRequest"}}
                ],
                "responses": {
                    "200": {"description": "User created, token cookies set", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "userName or email already exists"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Authenticated, token cookies set", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Refresh the token pair",
                "responses": {
                    "200": {"description": "New pair issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Refresh token missing, invalid or revoked"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "200": {"description": "Session deleted, cookies cleared"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "Authenticated user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/users/update-info": {
            "patch": {
                "tags": ["Users"],
                "summary": "Update profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateInfoRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "userName or email already exists"}
                }
            }
        },
        "/users/update-password": {
            "patch": {
                "tags": ["Users"],
                "summary": "Update password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated user", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Incorrect email or password"}
                }
            }
        },
        "/posts": {
            "get": {
                "tags": ["Posts"],
                "summary": "List posts",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Paginated posts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Posts"],
                "summary": "Create post",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created post", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "put": {
                "tags": ["Posts"],
                "summary": "Update own post",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated post", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Post not owned or missing"}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "tags": ["Posts"],
                "summary": "Get post by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Post", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Post not found"}
                }
            },
            "delete": {
                "tags": ["Posts"],
                "summary": "Delete own post",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted post and its comments", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Post not owned or missing"}
                }
            }
        },
        "/comments": {
            "post": {
                "tags": ["Comments"],
                "summary": "Comment on a post",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WriteCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created comment", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Incorrect post id"}
                }
            }
        },
        "/comments/{postId}": {
            "get": {
                "tags": ["Comments"],
                "summary": "List comments for a post",
                "parameters": [
                    {"name": "postId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Comments", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Incorrect post id"}
                }
            }
        },
        "/comments/{id}": {
            "delete": {
                "tags": ["Comments"],
                "summary": "Delete own comment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted comment", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Comment not owned or missing"}
                }
            }
        }
    },
    "definitions": {
        "RegistrationRequest": {
            "type": "object",
            "required": ["userName", "email", "password"],
            "properties": {
                "userName": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["userName", "email", "password"],
            "properties": {
                "userName": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpdateInfoRequest": {
            "type": "object",
            "required": ["userName", "email"],
            "properties": {
                "userName": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "UpdatePasswordRequest": {
            "type": "object",
            "required": ["email", "oldPassword", "newPassword"],
            "properties": {
                "email": {"type": "string"},
                "oldPassword": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6}
            }
        },
        "CreatePostRequest": {
            "type": "object",
            "required": ["title", "body"],
            "properties": {
                "title": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "UpdatePostRequest": {
            "type": "object",
            "required": ["postId", "title", "body"],
            "properties": {
                "postId": {"type": "string"},
                "title": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "WriteCommentRequest": {
            "type": "object",
            "required": ["postId", "message"],
            "properties": {
                "postId": {"type": "string"},
                "message": {"type": "string"}
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
