package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Refine Admin API",
        "description": "Backend for the posts, categories and roles admin dashboard. Resource endpoints follow the simple-rest contract: bare JSON arrays with the total in X-Total-Count, _start/_end windows, _sort/_order and field_op filters.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Authentication", "description": "Login, token refresh and identity"},
        {"name": "Access Control", "description": "can(resource, action) checks"},
        {"name": "Posts", "description": "Blog posts"},
        {"name": "Categories", "description": "Post categories (mutations are admin only)"},
        {"name": "Roles", "description": "Role catalogue"},
        {"name": "Grid", "description": "Data grid filter and sort translation"},
        {"name": "Exports", "description": "Asynchronous CSV and PDF exports"},
        {"name": "Live", "description": "Websocket change streams"}
    ],
    "paths": {
        "/health": {"get": {"summary": "Liveness check", "security": [], "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"summary": "Readiness check", "security": [], "responses": {"200": {"description": "Ready"}, "503": {"description": "A dependency is down"}}}},
        "/auth/login": {
            "post": {
                "tags": ["Authentication"], "summary": "Authenticate user", "security": [],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"], "summary": "Rotate refresh token", "security": [],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"], "summary": "Revoke refresh token",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {"get": {"tags": ["Authentication"], "summary": "Current user identity", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/auth/permissions": {"get": {"tags": ["Authentication"], "summary": "Current user role", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/access-control/can": {
            "get": {
                "tags": ["Access Control"], "summary": "Check access",
                "parameters": [
                    {"name": "resource", "in": "query", "required": true, "type": "string"},
                    {"name": "action", "in": "query", "required": true, "type": "string", "enum": ["list", "show", "create", "edit", "delete", "export"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AccessDecision"}}}
            }
        },
        "/posts": {
            "get": {
                "tags": ["Posts"], "summary": "List posts",
                "parameters": [
                    {"name": "_start", "in": "query", "type": "integer"},
                    {"name": "_end", "in": "query", "type": "integer"},
                    {"name": "_sort", "in": "query", "type": "string"},
                    {"name": "_order", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "id", "in": "query", "type": "array", "items": {"type": "integer"}, "collectionFormat": "multi"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "title_like", "in": "query", "type": "string"},
                    {"name": "category.id", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "headers": {"X-Total-Count": {"type": "integer"}}, "schema": {"type": "array", "items": {"$ref": "#/definitions/Post"}}}}
            },
            "post": {
                "tags": ["Posts"], "summary": "Create post",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePostRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Post"}}, "400": {"description": "Validation error"}}
            },
            "delete": {
                "tags": ["Posts"], "summary": "Delete several posts",
                "parameters": [{"name": "id", "in": "query", "required": true, "type": "array", "items": {"type": "integer"}, "collectionFormat": "multi"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/{id}": {
            "get": {"tags": ["Posts"], "summary": "Get post", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}}, "404": {"description": "Not Found"}}},
            "patch": {
                "tags": ["Posts"], "summary": "Update post",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePostRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}}}
            },
            "delete": {"tags": ["Posts"], "summary": "Delete post", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Post"}}}}
        },
        "/posts/export": {
            "post": {
                "tags": ["Exports"], "summary": "Export posts",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/{id}": {"get": {"tags": ["Exports"], "summary": "Export status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/exports/download/{token}": {"get": {"tags": ["Exports"], "summary": "Download export", "security": [], "produces": ["text/csv", "application/pdf"], "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "File"}, "403": {"description": "Invalid or expired token"}}}},
        "/categories": {
            "get": {"tags": ["Categories"], "summary": "List categories", "responses": {"200": {"description": "OK", "headers": {"X-Total-Count": {"type": "integer"}, "X-Cache": {"type": "string"}}, "schema": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}},
            "post": {"tags": ["Categories"], "summary": "Create category", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryRequest"}}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["Categories"], "summary": "Get category", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Category"}}}},
            "patch": {"tags": ["Categories"], "summary": "Update category", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CategoryRequest"}}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["Categories"], "summary": "Delete category", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Category in use"}}}
        },
        "/roles": {
            "get": {"tags": ["Roles"], "summary": "List roles", "responses": {"200": {"description": "OK", "headers": {"X-Total-Count": {"type": "integer"}}, "schema": {"type": "array", "items": {"$ref": "#/definitions/Role"}}}}},
            "post": {"tags": ["Roles"], "summary": "Create role", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRoleRequest"}}], "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate name"}}}
        },
        "/roles/{id}": {"get": {"tags": ["Roles"], "summary": "Get role", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Role"}}}}},
        "/grid/posts/columns": {"get": {"tags": ["Grid"], "summary": "Post grid columns", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/grid/categories/columns": {"get": {"tags": ["Grid"], "summary": "Category grid columns", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/grid/posts/category-options": {"get": {"tags": ["Grid"], "summary": "Category select options", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/grid/posts/filters/to-backend": {"post": {"tags": ["Grid"], "summary": "Grid filter model to backend filters", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilterModel"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unsupported operator"}}}},
        "/grid/posts/filters/to-ui": {"post": {"tags": ["Grid"], "summary": "Backend filters to grid filter model", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/CrudFilter"}}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unsupported operator"}}}},
        "/grid/posts/sort/to-backend": {"post": {"tags": ["Grid"], "summary": "Grid sort model to backend sorters", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/SortItem"}}}], "responses": {"200": {"description": "OK"}}}},
        "/grid/posts/sort/to-ui": {"post": {"tags": ["Grid"], "summary": "Backend sorters to grid sort model", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/CrudSort"}}}], "responses": {"200": {"description": "OK"}}}},
        "/live/{resource}": {"get": {"tags": ["Live"], "summary": "Websocket change stream", "parameters": [{"name": "resource", "in": "path", "required": true, "type": "string", "enum": ["posts", "categories", "roles"]}, {"name": "access_token", "in": "query", "type": "string"}], "responses": {"101": {"description": "Switching Protocols"}}}},
        "/metrics/snapshot": {"get": {"summary": "Metrics snapshot", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}, "required": ["username", "password"]},
        "RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}, "required": ["refresh_token"]},
        "AccessDecision": {"type": "object", "properties": {"can": {"type": "boolean"}, "reason": {"type": "string"}}},
        "CategoryRef": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}}},
        "Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "status": {"type": "string", "enum": ["published", "draft", "rejected"]},
                "category": {"$ref": "#/definitions/CategoryRef"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreatePostRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "status": {"type": "string", "enum": ["published", "draft", "rejected"]},
                "category": {"type": "object", "properties": {"id": {"type": "integer"}}}
            },
            "required": ["title", "content", "category"]
        },
        "Category": {"type": "object", "properties": {"id": {"type": "integer"}, "title": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}}},
        "CategoryRequest": {"type": "object", "properties": {"title": {"type": "string"}}, "required": ["title"]},
        "Role": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "CreateRoleRequest": {"type": "object", "properties": {"role": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}}}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "ExportRequest": {"type": "object", "properties": {"format": {"type": "string", "enum": ["csv", "pdf"]}, "query": {"type": "string"}}, "required": ["format"]},
        "FilterItem": {"type": "object", "properties": {"columnField": {"type": "string"}, "operatorValue": {"type": "string"}, "value": {}}},
        "FilterModel": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/FilterItem"}}, "linkOperator": {"type": "string", "enum": ["and", "or"]}}},
        "SortItem": {"type": "object", "properties": {"field": {"type": "string"}, "sort": {"type": "string", "enum": ["asc", "desc"]}}},
        "CrudFilter": {"type": "object", "properties": {"field": {"type": "string"}, "operator": {"type": "string", "enum": ["eq", "ne", "gt", "lt", "gte", "lte", "contains"]}, "value": {"type": "string"}}},
        "CrudSort": {"type": "object", "properties": {"field": {"type": "string"}, "order": {"type": "string", "enum": ["asc", "desc"]}}},
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
