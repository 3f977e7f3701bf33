// Package docs registra el documento OpenAPI servido en /swagger/*.
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
        "/callback": {
            "post": {
                "description": "Webhook de LINE. Verifica X-Line-Signature y responde cada mensaje de texto.",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["webhook"],
                "summary": "Recibir eventos de LINE",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Firma HMAC-SHA256 del cuerpo (base64)",
                        "name": "X-Line-Signature",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "firma o cuerpo inválido", "schema": {"type": "string"}}
                }
            }
        },
        "/care-events": {
            "get": {
                "description": "Lista los registros más recientes primero. Requiere ` + "`" + `Authorization: Bearer <ADMIN_TOKEN>` + "`" + `.",
                "produces": ["application/json"],
                "tags": ["care-events"],
                "summary": "Listar registros de cuidado",
                "parameters": [
                    {"type": "string", "description": "Bearer token de administración", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Filtra por ID de usuario LINE", "name": "user_id", "in": "query"},
                    {"type": "string", "description": "Lista CSV de tipos (feed,defecate,urinate,water)", "name": "types", "in": "query"},
                    {"type": "string", "description": "timestamp mínimo (RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "description": "timestamp máximo (RFC3339)", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Máximo de registros (1-1000). Por defecto 50", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/careevents.careEventResponse"}}},
                    "400": {"description": "Parámetros de filtro inválidos", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "503": {"description": "store unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/care-events/latest": {
            "get": {
                "description": "Devuelve el registro más reciente, global o filtrado por tipo.",
                "produces": ["application/json"],
                "tags": ["care-events"],
                "summary": "Último registro de cuidado",
                "parameters": [
                    {"type": "string", "description": "Bearer token de administración", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "feed | defecate | urinate | water", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/careevents.careEventResponse"}},
                    "400": {"description": "type inválido", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "404": {"description": "no events", "schema": {"type": "string"}},
                    "503": {"description": "store unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok", "schema": {"type": "string"}}}
            }
        }
    },
    "definitions": {
        "careevents.careEventResponse": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "action_type": {"type": "string"},
                "display_time": {"type": "string"},
                "id": {"type": "integer"},
                "timestamp": {"type": "string"},
                "user_id": {"type": "string"}
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
	Title:            "Pet Care Log API",
	Description:      "Bot de LINE que registra los cuidados de la mascota y API de lectura.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
