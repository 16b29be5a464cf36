// Package docs registers the OpenAPI document of the contact book API. The handlers carry
// matching swag annotations.
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
        "/contacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "List contacts",
                "parameters": [
                    {"type": "string", "description": "part of the name", "name": "name", "in": "query"},
                    {"type": "string", "description": "only favorites unless 0 or false", "name": "favorite", "in": "query"},
                    {"type": "integer", "description": "page number, starting at 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size, at most 50", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ContactListData"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Create a contact",
                "parameters": [
                    {"type": "string", "description": "name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "email", "name": "email", "in": "formData"},
                    {"type": "string", "description": "address", "name": "address", "in": "formData"},
                    {"type": "string", "description": "phone", "name": "phone", "in": "formData"},
                    {"type": "boolean", "description": "favorite", "name": "favorite", "in": "formData"},
                    {"type": "file", "description": "avatar image", "name": "avatarFile", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.ContactData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Delete all contacts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DeletedContactsData"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            }
        },
        "/contacts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Get a contact",
                "parameters": [
                    {"type": "integer", "description": "contact id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ContactData"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            },
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Update a contact",
                "parameters": [
                    {"type": "integer", "description": "contact id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "name", "name": "name", "in": "formData"},
                    {"type": "string", "description": "email", "name": "email", "in": "formData"},
                    {"type": "string", "description": "address", "name": "address", "in": "formData"},
                    {"type": "string", "description": "phone", "name": "phone", "in": "formData"},
                    {"type": "boolean", "description": "favorite", "name": "favorite", "in": "formData"},
                    {"type": "file", "description": "avatar image", "name": "avatarFile", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ContactData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["contacts"],
                "summary": "Delete a contact",
                "parameters": [
                    {"type": "integer", "description": "contact id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DeletedContactData"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "model.Contact": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "favorite": {"type": "boolean"},
                "avatar": {"type": "string", "example": "/public/uploads/1700000000000-0b5c4a3e-8f2d-4d8e-9a57-1c2d3e4f5a6b.png"}
            }
        },
        "model.Metadata": {
            "type": "object",
            "properties": {
                "totalRecords": {"type": "integer"},
                "firstPage": {"type": "integer"},
                "lastPage": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "model.ContactData": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {"contact": {"$ref": "#/definitions/model.Contact"}}
                }
            }
        },
        "model.ContactListData": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "contacts": {"type": "array", "items": {"$ref": "#/definitions/model.Contact"}},
                        "metadata": {"$ref": "#/definitions/model.Metadata"}
                    }
                }
            }
        },
        "model.DeletedContactData": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "message": {"type": "string", "example": "Contact deleted"},
                        "contact": {"$ref": "#/definitions/model.Contact"}
                    }
                }
            }
        },
        "model.DeletedContactsData": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "message": {"type": "string", "example": "All contacts deleted"},
                        "contacts": {"type": "array", "items": {"$ref": "#/definitions/model.Contact"}}
                    }
                }
            }
        },
        "model.ErrorEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "error"},
                "message": {"type": "string", "example": "contact not found"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Contact Book API",
	Description:      "Create, list, update and delete contacts with an optional avatar image.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
