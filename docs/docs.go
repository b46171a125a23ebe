// Package docs holds the generated Swagger specification for the DevConnect API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Register user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.registerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["profile"],
                "summary": "List profiles",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Profile"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Create or update profile",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.upsertProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Delete profile, posts and account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.msgResponse"}}}
            }
        },
        "/profile/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/profile/user/{user_id}": {
            "get": {
                "tags": ["profile"],
                "summary": "Profile by user id",
                "parameters": [{"type": "integer", "in": "path", "name": "user_id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/profile/experience": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Add experience",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.experienceRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}}}
            }
        },
        "/profile/experience/{exp_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Remove experience",
                "parameters": [{"type": "string", "in": "path", "name": "exp_id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}}}
            }
        },
        "/profile/education": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Add education",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.educationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}}}
            }
        },
        "/profile/education/{edu_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Remove education",
                "parameters": [{"type": "string", "in": "path", "name": "edu_id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Profile"}}}
            }
        },
        "/profile/github/{username}": {
            "get": {
                "tags": ["profile"],
                "summary": "GitHub repositories",
                "parameters": [{"type": "string", "in": "path", "name": "username", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/github.Repo"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "List posts, newest first",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.textRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}}}
            }
        },
        "/posts/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Get post",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete own post",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.msgResponse"}}}
            }
        },
        "/posts/like/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Like post",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/unlike/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Unlike post",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/comment/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Comment on post",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.textRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/posts/comment/{id}/{comment_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete own comment",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "id", "required": true},
                    {"type": "integer", "in": "path", "name": "comment_id", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "object", "properties": {"msg": {"type": "string"}}}}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "avatar": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "models.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user": {"$ref": "#/definitions/models.User"},
                "company": {"type": "string"},
                "website": {"type": "string"},
                "location": {"type": "string"},
                "status": {"type": "string"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "bio": {"type": "string"},
                "githubusername": {"type": "string"},
                "social": {"type": "object", "additionalProperties": {"type": "string"}},
                "experience": {"type": "array", "items": {"type": "object"}},
                "education": {"type": "array", "items": {"type": "object"}},
                "date": {"type": "string"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user": {"type": "integer"},
                "text": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "likes": {"type": "array", "items": {"type": "object"}},
                "comments": {"type": "array", "items": {"type": "object"}},
                "date": {"type": "string"}
            }
        },
        "github.Repo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "html_url": {"type": "string"},
                "description": {"type": "string"},
                "stargazers_count": {"type": "integer"},
                "forks_count": {"type": "integer"}
            }
        },
        "server.registerRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "server.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "server.upsertProfileRequest": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "website": {"type": "string"},
                "location": {"type": "string"},
                "bio": {"type": "string"},
                "status": {"type": "string"},
                "githubusername": {"type": "string"},
                "skills": {"type": "string"},
                "youtube": {"type": "string"},
                "twitter": {"type": "string"},
                "facebook": {"type": "string"},
                "linkedin": {"type": "string"},
                "instagram": {"type": "string"}
            }
        },
        "server.experienceRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "company": {"type": "string"},
                "location": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "current": {"type": "boolean"},
                "description": {"type": "string"}
            }
        },
        "server.educationRequest": {
            "type": "object",
            "properties": {
                "school": {"type": "string"},
                "degree": {"type": "string"},
                "fieldofstudy": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "current": {"type": "boolean"},
                "description": {"type": "string"}
            }
        },
        "server.textRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "server.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "server.msgResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "DevConnect API",
	Description:      "Developer profiles, experience, education and a shared post feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
