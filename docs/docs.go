// Package docs registers the OpenAPI description served under /swagger/.
// Keep it in sync with the handler annotations (swag init -g cmd/main.go).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"schemes": {{ marshal .Schemes }},
	"paths": {
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.tokenResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/auth/me": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"auth"
				],
				"summary": "Delete account",
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/lists/": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "My lists",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.TodoList"
							}
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "Create list",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.createListRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.TodoList"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/lists/{id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "Get list",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "list id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.TodoList"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "Rename list",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "list id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ListPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.TodoList"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "Delete list",
				"parameters": [
					{
						"type": "integer",
						"description": "list id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/lists/{id}/items/": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"items"
				],
				"summary": "Create item",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "list id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.createItemRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.TodoItem"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/items/{id}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"items"
				],
				"summary": "Update item",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "item id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "payload",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ItemPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.TodoItem"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"items"
				],
				"summary": "Delete item",
				"parameters": [
					{
						"type": "integer",
						"description": "item id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/activity/": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"activity"
				],
				"summary": "My activity",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Start of range",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End of range. Date-only treated as end of day.",
						"name": "to",
						"in": "query"
					},
					{
						"enum": [
							"LIST_CREATED",
							"LIST_UPDATED",
							"LIST_DELETED",
							"ITEM_CREATED",
							"ITEM_UPDATED",
							"ITEM_DELETED"
						],
						"type": "string",
						"description": "Activity type",
						"name": "type",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "count, events",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		},
		"/ws/lists": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"tags": [
					"lists"
				],
				"summary": "List stream",
				"parameters": [
					{
						"type": "string",
						"description": "Push interval, e.g. 2s",
						"name": "interval",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Bearer token",
						"name": "access_token",
						"in": "query"
					}
				],
				"responses": {
					"101": {
						"description": "Switching Protocols"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handlers.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.errorResponse": {
			"type": "object",
			"properties": {
				"detail": {
					"type": "string"
				}
			}
		},
		"handlers.registerRequest": {
			"type": "object",
			"required": [
				"email",
				"password",
				"username"
			],
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handlers.loginRequest": {
			"type": "object",
			"required": [
				"password",
				"username"
			],
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handlers.tokenResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				}
			}
		},
		"handlers.createListRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			}
		},
		"handlers.createItemRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"completed": {
					"type": "boolean"
				}
			}
		},
		"models.ListPatch": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			}
		},
		"models.ItemPatch": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"completed": {
					"type": "boolean"
				}
			}
		},
		"models.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"models.TodoItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"title": {
					"type": "string"
				},
				"completed": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string"
				},
				"list_id": {
					"type": "integer"
				}
			}
		},
		"models.TodoList": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"user_id": {
					"type": "integer"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.TodoItem"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the access token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todo Lists API",
	Description:      "Users own todo lists, lists own items. Bearer-token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
